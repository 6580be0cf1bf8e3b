package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const menuItemColumns = `id, name, description, venue, price, is_available, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }) (MenuItem, error) {
	var i MenuItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Venue,
		&i.Price,
		&i.IsAvailable,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertMenuItem = `INSERT INTO menu_items (id, name, description, venue, price, is_available)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + menuItemColumns

type InsertMenuItemParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Venue       string
	Price       pgtype.Numeric
	IsAvailable bool
}

func (q *Queries) InsertMenuItem(c context.Context, arg InsertMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(c, insertMenuItem,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Venue,
		arg.Price,
		arg.IsAvailable,
	)
	return scanMenuItem(row)
}

const findMenuItemById = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

func (q *Queries) FindMenuItemById(c context.Context, id uuid.UUID) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRow(c, findMenuItemById, id))
}

const listMenuItems = `SELECT ` + menuItemColumns + ` FROM menu_items
WHERE ($1::text = '' OR venue = $1::text)
ORDER BY venue, name`

func (q *Queries) ListMenuItems(c context.Context, venue string) ([]MenuItem, error) {
	rows, err := q.db.Query(c, listMenuItems, venue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []MenuItem{}
	for rows.Next() {
		i, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteMenuItem = `DELETE FROM menu_items WHERE id = $1`

func (q *Queries) DeleteMenuItem(c context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(c, deleteMenuItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateMenuItem = `UPDATE menu_items
SET name = $2, description = $3, venue = $4, price = $5, is_available = $6, updated_at = NOW()
WHERE id = $1
RETURNING ` + menuItemColumns

type UpdateMenuItemParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Venue       string
	Price       pgtype.Numeric
	IsAvailable bool
}

func (q *Queries) UpdateMenuItem(c context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(c, updateMenuItem,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Venue,
		arg.Price,
		arg.IsAvailable,
	)
	return scanMenuItem(row)
}
