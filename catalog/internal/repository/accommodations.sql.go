package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const accommodationColumns = `id, name, description, category, image_url, price_per_night, amenities, is_fully_booked, created_at, updated_at`

func scanAccommodation(row interface{ Scan(...interface{}) error }) (Accommodation, error) {
	var i Accommodation
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Category,
		&i.ImageUrl,
		&i.PricePerNight,
		&i.Amenities,
		&i.IsFullyBooked,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertAccommodation = `INSERT INTO accommodations (id, name, description, category, image_url, price_per_night, amenities, is_fully_booked)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + accommodationColumns

type InsertAccommodationParams struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Category      string
	ImageUrl      string
	PricePerNight pgtype.Numeric
	Amenities     []string
	IsFullyBooked bool
}

func (q *Queries) InsertAccommodation(c context.Context, arg InsertAccommodationParams) (Accommodation, error) {
	row := q.db.QueryRow(c, insertAccommodation,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.ImageUrl,
		arg.PricePerNight,
		arg.Amenities,
		arg.IsFullyBooked,
	)
	return scanAccommodation(row)
}

const findAccommodationById = `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = $1`

func (q *Queries) FindAccommodationById(c context.Context, id uuid.UUID) (Accommodation, error) {
	return scanAccommodation(q.db.QueryRow(c, findAccommodationById, id))
}

const listAccommodations = `SELECT ` + accommodationColumns + ` FROM accommodations
WHERE ($1::text = '' OR category = $1::text)
ORDER BY price_per_night DESC, name`

func (q *Queries) ListAccommodations(c context.Context, category string) ([]Accommodation, error) {
	rows, err := q.db.Query(c, listAccommodations, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Accommodation{}
	for rows.Next() {
		i, err := scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteAccommodation = `DELETE FROM accommodations WHERE id = $1`

func (q *Queries) DeleteAccommodation(c context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(c, deleteAccommodation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateAccommodation = `UPDATE accommodations
SET name = $2, description = $3, category = $4, image_url = $5, price_per_night = $6, amenities = $7, is_fully_booked = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + accommodationColumns

type UpdateAccommodationParams struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Category      string
	ImageUrl      string
	PricePerNight pgtype.Numeric
	Amenities     []string
	IsFullyBooked bool
}

func (q *Queries) UpdateAccommodation(c context.Context, arg UpdateAccommodationParams) (Accommodation, error) {
	row := q.db.QueryRow(c, updateAccommodation,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.ImageUrl,
		arg.PricePerNight,
		arg.Amenities,
		arg.IsFullyBooked,
	)
	return scanAccommodation(row)
}
