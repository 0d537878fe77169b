package models

import "time"

type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	Bio          string
	Avatar       string
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// CanModify reports whether the user may mutate a resource owned by
// ownerID: owners and admins only.
func (u *User) CanModify(ownerID int) bool {
	return u != nil && (u.ID == ownerID || u.IsAdmin())
}

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Category struct {
	ID          int
	Name        string
	Description string
	Color       string
	PostCount   int
}

// Post carries the row plus the joined author and category columns that
// every listing renders.
type Post struct {
	ID            int
	UserID        int
	CategoryID    int
	Title         string
	Content       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Views         int
	IsPinned      bool
	Image         string
	Username      string
	CategoryName  string
	CategoryColor string
	CommentCount  int
}

type Comment struct {
	ID        int
	PostID    int
	UserID    int
	Content   string
	CreatedAt time.Time
	ParentID  *int
	Image     string
	Username  string
}

type Stats struct {
	Users    int
	Posts    int
	Comments int
}
