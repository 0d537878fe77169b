package models

import (
	"database/sql"
	"errors"
)

func CreateComment(db *sql.DB, postID, userID int, content, image string) (int64, error) {
	// parent_id stays NULL: comments are flat.
	res, err := db.Exec(`INSERT INTO comments (post_id, user_id, content, image) VALUES (?, ?, ?, NULLIF(?, ''))`,
		postID, userID, content, image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func GetComment(db *sql.DB, id int) (*Comment, error) {
	var c Comment
	var parent sql.NullInt64
	var image sql.NullString
	err := db.QueryRow(`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, c.parent_id, c.image, u.username
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = ?`, id).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &parent, &image, &c.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		pid := int(parent.Int64)
		c.ParentID = &pid
	}
	c.Image = image.String
	return &c, nil
}

// ListComments returns the top-level comments of a post, oldest first.
func ListComments(db *sql.DB, postID int) ([]Comment, error) {
	rows, err := db.Query(`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, c.image, u.username
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ? AND c.parent_id IS NULL
		ORDER BY c.created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cs []Comment
	for rows.Next() {
		var c Comment
		var image sql.NullString
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &image, &c.Username); err != nil {
			return nil, err
		}
		c.Image = image.String
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

// DeleteComment removes the comment and returns its image path, if any,
// for the caller to unlink after the delete has gone through.
func DeleteComment(db *sql.DB, id int) (string, error) {
	var image sql.NullString
	err := db.QueryRow(`SELECT image FROM comments WHERE id = ?`, id).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if _, err := db.Exec(`DELETE FROM comments WHERE id = ?`, id); err != nil {
		return "", err
	}
	return image.String, nil
}
