package server

import (
	"net/http"

	"agora/internal/models"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		postCount, commentCount, err := models.CountUserActivity(s.DB, user.ID)
		if err != nil {
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		posts, err := models.ListUserPosts(s.DB, user.ID, 5)
		if err != nil {
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		s.render(w, "profile", map[string]any{
			"User":         user,
			"PostCount":    postCount,
			"CommentCount": commentCount,
			"Posts":        posts,
		})

	case http.MethodPost:
		limitBody(w, r)
		bio := r.FormValue("bio")
		newAvatar, err := s.saveUpload(r, "avatar", "avatars")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		avatar := user.Avatar
		var obsolete string
		if newAvatar != "" {
			obsolete = user.Avatar
			avatar = newAvatar
		}
		if err := models.UpdateProfile(s.DB, user.ID, bio, avatar); err != nil {
			s.Log.Error("update profile", "err", err)
			s.removeUploads(newAvatar)
			http.Error(w, "could not update profile", http.StatusInternalServerError)
			return
		}
		s.removeUploads(obsolete)
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
