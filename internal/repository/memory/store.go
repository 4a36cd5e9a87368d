// Package memory is the process-lifetime fallback store. One Store is built at
// startup and shared by every repository decorator; tests build a fresh one.
package memory

import (
	"sync"

	"budgetthreads/internal/domain"
)

// Store keeps every entity in process memory. All methods are safe for
// concurrent use; nothing survives a restart.
type Store struct {
	mu sync.RWMutex

	carts    map[string][]domain.LineItem
	orders   []domain.Order
	designs  []domain.Design
	reviews  []domain.Review
	products []domain.Product
	users    []domain.User
}

func New() *Store {
	return &Store{carts: make(map[string][]domain.LineItem)}
}

func (s *Store) Carts() *Carts       { return &Carts{s: s} }
func (s *Store) Orders() *Orders     { return &Orders{s: s} }
func (s *Store) Designs() *Designs   { return &Designs{s: s} }
func (s *Store) Reviews() *Reviews   { return &Reviews{s: s} }
func (s *Store) Products() *Products { return &Products{s: s} }
func (s *Store) Users() *Users       { return &Users{s: s} }
