package session

import (
	"strings"

	"github.com/google/uuid"
)

const maxIDLength = 128

// Resolver derives the anonymous visitor id from the client marker, minting a
// new one when the marker is missing or unusable.
type Resolver struct {
	newID func() string
}

func New() *Resolver {
	return &Resolver{newID: func() string { return "sid_" + uuid.NewString() }}
}

// Resolve returns the session id for marker and whether it was minted.
func (r *Resolver) Resolve(marker string) (string, bool) {
	marker = strings.TrimSpace(marker)
	if marker != "" && len(marker) <= maxIDLength && !strings.ContainsAny(marker, " ;,\"") {
		return marker, false
	}
	return r.newID(), true
}
