package server

import (
	"errors"
	"net/http"

	"agora/internal/models"
)

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request, user *models.User) {
	stats, err := models.CountStats(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	recent, err := models.ListLatestPosts(s.DB, 5)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	users, err := models.ListUsers(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, "admin", map[string]any{
		"User":   user,
		"Stats":  stats,
		"Recent": recent,
		"Users":  users,
	})
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request, _ *models.User) {
	images, err := models.DeleteUser(s.DB, urlID(r))
	if errors.Is(err, models.ErrNotAuthorized) {
		http.Error(w, "not authorized", http.StatusForbidden)
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.Log.Error("delete user", "err", err)
		http.Error(w, "could not delete user", http.StatusInternalServerError)
		return
	}
	s.removeUploads(images...)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
