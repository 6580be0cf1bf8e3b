package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const experienceColumns = `id, name, description, category, is_paid, price, image_url, is_visible, created_by, created_at, updated_at`

func scanExperience(row interface{ Scan(...interface{}) error }) (Experience, error) {
	var i Experience
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Category,
		&i.IsPaid,
		&i.Price,
		&i.ImageUrl,
		&i.IsVisible,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertExperience = `INSERT INTO experiences (id, name, description, category, is_paid, price, image_url, is_visible, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + experienceColumns

type InsertExperienceParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	IsPaid      bool
	Price       pgtype.Numeric
	ImageUrl    string
	IsVisible   bool
	CreatedBy   uuid.UUID
}

func (q *Queries) InsertExperience(c context.Context, arg InsertExperienceParams) (Experience, error) {
	row := q.db.QueryRow(c, insertExperience,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.IsPaid,
		arg.Price,
		arg.ImageUrl,
		arg.IsVisible,
		arg.CreatedBy,
	)
	return scanExperience(row)
}

const insertExperienceSlot = `INSERT INTO experience_slots (id, experience_id, slot_date, start_time, end_time, available)
VALUES ($1, $2, $3::text::date, $4::text::time, $5::text::time, $6)`

type InsertExperienceSlotParams struct {
	ID           uuid.UUID
	ExperienceID uuid.UUID
	SlotDate     string
	StartTime    string
	EndTime      string
	Available    bool
}

func (q *Queries) InsertExperienceSlot(c context.Context, arg InsertExperienceSlotParams) error {
	_, err := q.db.Exec(c, insertExperienceSlot,
		arg.ID,
		arg.ExperienceID,
		arg.SlotDate,
		arg.StartTime,
		arg.EndTime,
		arg.Available,
	)
	return err
}

const findExperienceById = `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`

func (q *Queries) FindExperienceById(c context.Context, id uuid.UUID) (Experience, error) {
	return scanExperience(q.db.QueryRow(c, findExperienceById, id))
}

const listExperiences = `SELECT ` + experienceColumns + ` FROM experiences
WHERE ($1::text = '' OR category = $1::text) AND is_visible
ORDER BY name`

func (q *Queries) ListExperiences(c context.Context, category string) ([]Experience, error) {
	rows, err := q.db.Query(c, listExperiences, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Experience{}
	for rows.Next() {
		i, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findSlotsByExperienceIds = `SELECT id, experience_id, slot_date::text, substr(start_time::text, 1, 5), substr(end_time::text, 1, 5), available
FROM experience_slots
WHERE experience_id = ANY($1::uuid[])
ORDER BY slot_date, start_time`

func (q *Queries) FindSlotsByExperienceIds(c context.Context, ids []uuid.UUID) ([]ExperienceSlot, error) {
	rows, err := q.db.Query(c, findSlotsByExperienceIds, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ExperienceSlot{}
	for rows.Next() {
		var i ExperienceSlot
		if err := rows.Scan(
			&i.ID,
			&i.ExperienceID,
			&i.SlotDate,
			&i.StartTime,
			&i.EndTime,
			&i.Available,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteExperience = `DELETE FROM experiences WHERE id = $1`

func (q *Queries) DeleteExperience(c context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(c, deleteExperience, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateExperience = `UPDATE experiences
SET name = $2, description = $3, category = $4, is_paid = $5, price = $6, image_url = $7, is_visible = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + experienceColumns

type UpdateExperienceParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	IsPaid      bool
	Price       pgtype.Numeric
	ImageUrl    string
	IsVisible   bool
}

func (q *Queries) UpdateExperience(c context.Context, arg UpdateExperienceParams) (Experience, error) {
	row := q.db.QueryRow(c, updateExperience,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Category,
		arg.IsPaid,
		arg.Price,
		arg.ImageUrl,
		arg.IsVisible,
	)
	return scanExperience(row)
}

const updateExperienceSlot = `UPDATE experience_slots
SET slot_date = $3::text::date, start_time = $4::text::time, end_time = $5::text::time, available = $6
WHERE id = $1 AND experience_id = $2`

type UpdateExperienceSlotParams struct {
	ID           uuid.UUID
	ExperienceID uuid.UUID
	SlotDate     string
	StartTime    string
	EndTime      string
	Available    bool
}

func (q *Queries) UpdateExperienceSlot(c context.Context, arg UpdateExperienceSlotParams) (int64, error) {
	result, err := q.db.Exec(c, updateExperienceSlot,
		arg.ID,
		arg.ExperienceID,
		arg.SlotDate,
		arg.StartTime,
		arg.EndTime,
		arg.Available,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const touchExperience = `UPDATE experiences SET updated_at = NOW() WHERE id = $1`

func (q *Queries) TouchExperience(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, touchExperience, id)
	return err
}
