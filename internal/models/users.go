package models

import (
	"database/sql"
	"errors"
	"strings"
)

func CreateUser(db *sql.DB, username, email, passwordHash string) (int64, error) {
	res, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash)
	if err != nil {
		str := err.Error()
		if strings.Contains(str, "UNIQUE constraint failed: users.username") {
			return 0, ErrDuplicateUsername
		}
		if strings.Contains(str, "UNIQUE constraint failed: users.email") {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return res.LastInsertId()
}

func GetUserByID(db *sql.DB, id int) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, username, email, password_hash, role, created_at, bio, avatar
		FROM users WHERE id = ?`, id))
}

// GetUserByLogin looks a user up by username or email, for the login form.
func GetUserByLogin(db *sql.DB, identifier string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, username, email, password_hash, role, created_at, bio, avatar
		FROM users WHERE username = ? OR email = ?`, identifier, identifier))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var avatar sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.Bio, &avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Avatar = avatar.String
	return &u, nil
}

func UpdateProfile(db *sql.DB, userID int, bio, avatar string) error {
	_, err := db.Exec(`UPDATE users SET bio = ?, avatar = NULLIF(?, '') WHERE id = ?`, bio, avatar, userID)
	return err
}

func CountUserActivity(db *sql.DB, userID int) (posts, comments int, err error) {
	if err = db.QueryRow(`SELECT COUNT(*) FROM posts WHERE user_id = ?`, userID).Scan(&posts); err != nil {
		return
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM comments WHERE user_id = ?`, userID).Scan(&comments)
	return
}

func ListUserPosts(db *sql.DB, userID, limit int) ([]Post, error) {
	rows, err := db.Query(postSelect+`
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}
