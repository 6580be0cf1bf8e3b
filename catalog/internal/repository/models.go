package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Experience struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	IsPaid      bool               `json:"is_paid"`
	Price       pgtype.Numeric     `json:"price"`
	ImageUrl    string             `json:"image_url"`
	IsVisible   bool               `json:"is_visible"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type ExperienceSlot struct {
	ID           uuid.UUID `json:"id"`
	ExperienceID uuid.UUID `json:"experience_id"`
	SlotDate     string    `json:"slot_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Available    bool      `json:"available"`
}

type Accommodation struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	ImageUrl      string             `json:"image_url"`
	PricePerNight pgtype.Numeric     `json:"price_per_night"`
	Amenities     []string           `json:"amenities"`
	IsFullyBooked bool               `json:"is_fully_booked"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type MenuItem struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Venue       string             `json:"venue"`
	Price       pgtype.Numeric     `json:"price"`
	IsAvailable bool               `json:"is_available"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}
