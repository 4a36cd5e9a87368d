package domain

import "time"

type Design struct {
	ID          string    `json:"id"`
	SessionID   *string   `json:"sessionId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	FrontImage  string    `json:"frontImage"`
	BackImage   *string   `json:"backImage"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
