package models

import (
	"database/sql"
	"errors"
)

// ListCategories returns all categories with their post counts for the
// home page grid.
func ListCategories(db *sql.DB) ([]Category, error) {
	rows, err := db.Query(`SELECT c.id, c.name, c.description, c.color,
			(SELECT COUNT(*) FROM posts WHERE category_id = c.id) AS post_count
		FROM categories c
		ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []Category
	for rows.Next() {
		var c Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc, &c.Color, &c.PostCount); err != nil {
			return nil, err
		}
		c.Description = desc.String
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func GetCategory(db *sql.DB, id int) (*Category, error) {
	var c Category
	var desc sql.NullString
	err := db.QueryRow(`SELECT id, name, description, color FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &desc, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Description = desc.String
	return &c, nil
}
