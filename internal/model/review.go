package model

import (
	"github.com/google/uuid"
)

// Review is a star rating left by a client, optionally pinned to a barber
type Review struct {
	Base
	ClientID   uuid.UUID  `db:"client_id" json:"client_id"`
	BarberID   *uuid.UUID `db:"barber_id" json:"barber_id,omitempty"`
	Rating     int        `db:"rating" json:"rating"`
	Comment    string     `db:"comment" json:"comment"`
	ClientName string     `db:"client_name" json:"client_name"`
}

type CreateReviewRequest struct {
	BarberID *uuid.UUID `json:"barber_id"`
	Rating   int        `json:"rating" binding:"required,min=1,max=5"`
	Comment  string     `json:"comment" binding:"max=2000"`
}
