package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InsertSlot struct {
	Date      string `validate:"required,datetime=2006-01-02" json:"date"`
	StartTime string `validate:"required,datetime=15:04"      json:"startTime"`
	EndTime   string `validate:"required,datetime=15:04"      json:"endTime"`
	Available bool   `                                        json:"available"`
}

type InsertExperience struct {
	Name        string          `validate:"required,max=255"                               json:"name"`
	Description string          `validate:"max=5000"                                       json:"description"`
	Category    string          `validate:"required,oneof=wellness education art creative" json:"category"`
	IsPaid      bool            `                                                          json:"isPaid"`
	Price       decimal.Decimal `validate:"price"                                          json:"price"`
	ImageURL    string          `validate:"omitempty,url"                                  json:"imageUrl"`
	IsVisible   bool            `                                                          json:"isVisible"`
	Slots       []InsertSlot    `validate:"dive"                                           json:"availableSlots"`
	CreatedBy   uuid.UUID       `                                                          json:"-"`
}

type InsertAccommodation struct {
	Name          string          `validate:"required,max=255"                  json:"name"`
	Description   string          `validate:"max=5000"                          json:"description"`
	Category      string          `validate:"required,oneof=lux standard eco"   json:"category"`
	ImageURL      string          `validate:"omitempty,url"                     json:"imageUrl"`
	PricePerNight decimal.Decimal `validate:"price"                             json:"pricePerNight"`
	Amenities     []string        `validate:"dive,required,max=64"              json:"amenities"`
	IsFullyBooked bool            `                                             json:"isFullyBooked"`
}

type InsertMenuItem struct {
	Name        string          `validate:"required,max=255" json:"name"`
	Description string          `validate:"max=5000"         json:"description"`
	Venue       string          `validate:"required,max=255" json:"venue"`
	Price       decimal.Decimal `validate:"price"            json:"price"`
	IsAvailable bool            `                            json:"isAvailable"`
}

type ListExperiences struct {
	Category string `validate:"omitempty,oneof=wellness education art creative"`
}

type ListAccommodations struct {
	Category string `validate:"omitempty,oneof=lux standard eco"`
}

type ListMenuItems struct {
	Venue string `validate:"omitempty,max=255"`
}

// UpdateExperience replaces every editable field; slots are updated one by
// one through UpdateSlot.
type UpdateExperience struct {
	Name        string          `validate:"required,max=255"                               json:"name"`
	Description string          `validate:"max=5000"                                       json:"description"`
	Category    string          `validate:"required,oneof=wellness education art creative" json:"category"`
	IsPaid      bool            `                                                          json:"isPaid"`
	Price       decimal.Decimal `validate:"price"                                          json:"price"`
	ImageURL    string          `validate:"omitempty,url"                                  json:"imageUrl"`
	IsVisible   bool            `                                                          json:"isVisible"`
}

type UpdateSlot struct {
	Date      string `validate:"required,datetime=2006-01-02" json:"date"`
	StartTime string `validate:"required,datetime=15:04"      json:"startTime"`
	EndTime   string `validate:"required,datetime=15:04"      json:"endTime"`
	Available bool   `                                        json:"available"`
}

type UpdateAccommodation struct {
	Name          string          `validate:"required,max=255"                json:"name"`
	Description   string          `validate:"max=5000"                        json:"description"`
	Category      string          `validate:"required,oneof=lux standard eco" json:"category"`
	ImageURL      string          `validate:"omitempty,url"                   json:"imageUrl"`
	PricePerNight decimal.Decimal `validate:"price"                           json:"pricePerNight"`
	Amenities     []string        `validate:"dive,required,max=64"            json:"amenities"`
	IsFullyBooked bool            `                                           json:"isFullyBooked"`
}

type UpdateMenuItem struct {
	Name        string          `validate:"required,max=255" json:"name"`
	Description string          `validate:"max=5000"         json:"description"`
	Venue       string          `validate:"required,max=255" json:"venue"`
	Price       decimal.Decimal `validate:"price"            json:"price"`
	IsAvailable bool            `                            json:"isAvailable"`
}
