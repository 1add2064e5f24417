package model

import (
	"github.com/google/uuid"
)

// Barber represents a professional accepting bookings
type Barber struct {
	Base
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Name      string     `db:"name" json:"name"`
	Bio       string     `db:"bio" json:"bio,omitempty"`
	PhotoURL  string     `db:"photo_url" json:"photo_url,omitempty"`
	Available bool       `db:"available" json:"available"`
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
	// Optional login for the barber back-office
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type UpdateBarberRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	PhotoURL  *string `json:"photo_url"`
	Available *bool   `json:"available"`
}
