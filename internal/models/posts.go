package models

import (
	"database/sql"
	"errors"
)

const postSelect = `SELECT p.id, p.user_id, p.category_id, p.title, p.content,
		p.created_at, p.updated_at, p.views, p.is_pinned, p.image,
		u.username, c.name, c.color,
		(SELECT COUNT(*) FROM comments WHERE post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.user_id = u.id
	JOIN categories c ON p.category_id = c.id`

func CreatePost(db *sql.DB, userID, categoryID int, title, content, image string) (int64, error) {
	res, err := db.Exec(`INSERT INTO posts (user_id, category_id, title, content, image) VALUES (?, ?, ?, ?, NULLIF(?, ''))`,
		userID, categoryID, title, content, image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ViewPost increments the view counter and reads the row in one
// transaction, so two concurrent views cannot lose an increment.
func ViewPost(db *sql.DB, id int) (*Post, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	res, err := tx.Exec(`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return nil, ErrNotFound
	}
	p, err := scanPost(tx.QueryRow(postSelect+` WHERE p.id = ?`, id))
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return p, tx.Commit()
}

// GetPost reads a post without touching the view counter, for edit forms
// and ownership checks.
func GetPost(db *sql.DB, id int) (*Post, error) {
	return scanPost(db.QueryRow(postSelect+` WHERE p.id = ?`, id))
}

func UpdatePost(db *sql.DB, id, categoryID int, title, content, image string) error {
	_, err := db.Exec(`UPDATE posts SET title = ?, content = ?, category_id = ?, image = NULLIF(?, ''),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, title, content, categoryID, image, id)
	return err
}

func SetPostPinned(db *sql.DB, id int, pinned bool) error {
	_, err := db.Exec(`UPDATE posts SET is_pinned = ? WHERE id = ?`, pinned, id)
	return err
}

// DeletePost removes the post and its comments in one transaction and
// returns the image paths that belonged to them, so the caller can
// unlink the files once the commit has succeeded.
func DeletePost(db *sql.DB, id int) ([]string, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	images, err := collectImages(tx,
		`SELECT image FROM posts WHERE id = ? AND image IS NOT NULL`,
		`SELECT image FROM comments WHERE post_id = ? AND image IS NOT NULL`, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	res, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return nil, ErrNotFound
	}
	return images, tx.Commit()
}

// ListRecentPosts orders pinned posts first, then newest.
func ListRecentPosts(db *sql.DB, limit int) ([]Post, error) {
	rows, err := db.Query(postSelect+`
		ORDER BY p.is_pinned DESC, p.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// ListLatestPosts orders purely by recency, ignoring pins, for the
// admin activity view.
func ListLatestPosts(db *sql.DB, limit int) ([]Post, error) {
	rows, err := db.Query(postSelect+`
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func ListPostsByCategory(db *sql.DB, categoryID int) ([]Post, error) {
	rows, err := db.Query(postSelect+`
		WHERE p.category_id = ?
		ORDER BY p.is_pinned DESC, p.created_at DESC`, categoryID)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// SearchPosts does a substring match over title, content, author
// username and category name. SQLite LIKE is case-insensitive for ASCII.
func SearchPosts(db *sql.DB, query string) ([]Post, error) {
	q := "%" + query + "%"
	rows, err := db.Query(postSelect+`
		WHERE p.title LIKE ? OR p.content LIKE ? OR u.username LIKE ? OR c.name LIKE ?
		ORDER BY p.created_at DESC`, q, q, q, q)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var image sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.CategoryID, &p.Title, &p.Content,
		&p.CreatedAt, &p.UpdatedAt, &p.Views, &p.IsPinned, &image,
		&p.Username, &p.CategoryName, &p.CategoryColor, &p.CommentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Image = image.String
	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func collectImages(tx *sql.Tx, postQuery, commentQuery string, id int) ([]string, error) {
	var images []string
	for _, q := range []string{postQuery, commentQuery} {
		rows, err := tx.Query(q, id)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var img string
			if err := rows.Scan(&img); err != nil {
				rows.Close()
				return nil, err
			}
			images = append(images, img)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return images, nil
}
