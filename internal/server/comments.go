package server

import (
	"net/http"

	"agora/internal/metrics"
	"agora/internal/models"
)

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	limitBody(w, r)
	content := r.FormValue("content")
	if content == "" {
		http.Error(w, "missing content", http.StatusBadRequest)
		return
	}
	image, err := s.saveUpload(r, "image", "comments")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := models.CreateComment(s.DB, post.ID, user.ID, content, image); err != nil {
		s.Log.Error("create comment", "err", err)
		s.removeUploads(image)
		http.Error(w, "could not create comment", http.StatusInternalServerError)
		return
	}
	metrics.CommentsCreated.Inc()
	http.Redirect(w, r, "/post/"+itoa(post.ID), http.StatusSeeOther)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	comment, err := models.GetComment(s.DB, urlID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !user.CanModify(comment.UserID) {
		http.Error(w, "not authorized", http.StatusForbidden)
		return
	}
	image, err := models.DeleteComment(s.DB, comment.ID)
	if err != nil {
		s.Log.Error("delete comment", "err", err)
		http.Error(w, "could not delete comment", http.StatusInternalServerError)
		return
	}
	s.removeUploads(image)
	http.Redirect(w, r, "/post/"+itoa(comment.PostID), http.StatusSeeOther)
}
