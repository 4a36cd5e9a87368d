package domain

import "time"

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	UserEmail *string   `json:"userEmail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
