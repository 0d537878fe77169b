package models

import (
	"database/sql"
	"strings"
)

type AdminUser struct {
	ID          int
	Username    string
	MaskedEmail string
	Role        string
	CreatedAt   string
}

func CountStats(db *sql.DB) (Stats, error) {
	var s Stats
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&s.Users); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&s.Posts); err != nil {
		return s, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&s.Comments); err != nil {
		return s, err
	}
	return s, nil
}

// ListUsers returns every user for the admin management view, with the
// email partially masked.
func ListUsers(db *sql.DB) ([]AdminUser, error) {
	rows, err := db.Query(`SELECT id, username, email, role, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []AdminUser
	for rows.Next() {
		var u AdminUser
		var email string
		if err := rows.Scan(&u.ID, &u.Username, &email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.MaskedEmail = MaskEmail(email)
		users = append(users, u)
	}
	return users, rows.Err()
}

// MaskEmail keeps the first three characters and the domain.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 3 {
		return "***"
	}
	return email[:3] + "***" + email[at+1:]
}

// DeleteUser removes the user together with their posts, their comments,
// and the comments left by others on those posts, so no comment is left
// pointing at a deleted post. Returns every image path that belonged to
// the removed rows plus the user's avatar. The "admin" account is
// refused.
func DeleteUser(db *sql.DB, id int) ([]string, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	var username string
	var avatar sql.NullString
	err = tx.QueryRow(`SELECT username, avatar FROM users WHERE id = ?`, id).Scan(&username, &avatar)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return nil, ErrNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if username == "admin" {
		tx.Rollback()
		return nil, ErrNotAuthorized
	}

	var images []string
	queries := []string{
		`SELECT image FROM posts WHERE user_id = ? AND image IS NOT NULL`,
		`SELECT image FROM comments WHERE user_id = ? AND image IS NOT NULL`,
		`SELECT image FROM comments WHERE post_id IN (SELECT id FROM posts WHERE user_id = ?) AND image IS NOT NULL`,
	}
	for _, q := range queries {
		rows, err := tx.Query(q, id)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		for rows.Next() {
			var img string
			if err := rows.Scan(&img); err != nil {
				rows.Close()
				tx.Rollback()
				return nil, err
			}
			images = append(images, img)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if avatar.Valid {
		images = append(images, avatar.String)
	}

	steps := []string{
		`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE user_id = ?)`,
		`DELETE FROM comments WHERE user_id = ?`,
		`DELETE FROM posts WHERE user_id = ?`,
		`DELETE FROM sessions WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(q, id); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return images, tx.Commit()
}
