package server

import (
	"errors"
	"net/http"

	"agora/internal/metrics"
	"agora/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	stats, err := models.CountStats(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	categories, err := models.ListCategories(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	posts, err := models.ListRecentPosts(s.DB, 10)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, "index", map[string]any{
		"Stats":      stats,
		"Categories": categories,
		"Posts":      posts,
		"User":       s.currentUser(r),
	})
}

func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		categories, _ := models.ListCategories(s.DB)
		s.render(w, "new_post", map[string]any{"User": user, "Categories": categories})

	case http.MethodPost:
		limitBody(w, r)
		title := r.FormValue("title")
		content := r.FormValue("content")
		if title == "" || content == "" {
			w.WriteHeader(http.StatusBadRequest)
			categories, _ := models.ListCategories(s.DB)
			s.render(w, "new_post", map[string]any{
				"User": user, "Categories": categories,
				"Error": "Please fill in both title and content",
				"Title": title, "Content": content,
			})
			return
		}
		// an unknown category id falls back to General rather than
		// inserting a post no joined read can see
		categoryID := atoi(r.FormValue("category"))
		if _, err := models.GetCategory(s.DB, categoryID); err != nil {
			categoryID = 1 // General
		}
		image, err := s.saveUpload(r, "image", "posts")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, err := models.CreatePost(s.DB, user.ID, categoryID, title, content, image)
		if err != nil {
			s.Log.Error("create post", "err", err)
			s.removeUploads(image)
			http.Error(w, "could not create post", http.StatusInternalServerError)
			return
		}
		metrics.PostsCreated.Inc()
		http.Redirect(w, r, "/post/"+itoa(int(id)), http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	post, err := models.ViewPost(s.DB, id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	comments, err := models.ListComments(s.DB, id)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, "post", map[string]any{
		"Post":     post,
		"Comments": comments,
		"User":     s.currentUser(r),
	})
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !user.CanModify(post.UserID) {
		http.Error(w, "not authorized", http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, _ := models.ListCategories(s.DB)
		s.render(w, "edit_post", map[string]any{"User": user, "Post": post, "Categories": categories})

	case http.MethodPost:
		limitBody(w, r)
		title := r.FormValue("title")
		content := r.FormValue("content")
		if title == "" || content == "" {
			w.WriteHeader(http.StatusBadRequest)
			categories, _ := models.ListCategories(s.DB)
			s.render(w, "edit_post", map[string]any{
				"User": user, "Post": post, "Categories": categories,
				"Error": "Please fill in all fields",
			})
			return
		}
		categoryID := atoi(r.FormValue("category"))
		if _, err := models.GetCategory(s.DB, categoryID); err != nil {
			categoryID = post.CategoryID
		}

		newImage, err := s.saveUpload(r, "image", "posts")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		image := post.Image
		var obsolete string
		switch {
		case newImage != "":
			obsolete = post.Image
			image = newImage
		case r.FormValue("remove_image") != "":
			obsolete = post.Image
			image = ""
		}

		if err := models.UpdatePost(s.DB, post.ID, categoryID, title, content, image); err != nil {
			s.Log.Error("update post", "err", err)
			s.removeUploads(newImage)
			http.Error(w, "could not update post", http.StatusInternalServerError)
			return
		}
		// old file goes away only after the row change went through
		s.removeUploads(obsolete)
		http.Redirect(w, r, "/post/"+itoa(post.ID), http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !user.CanModify(post.UserID) {
		http.Error(w, "not authorized", http.StatusForbidden)
		return
	}
	images, err := models.DeletePost(s.DB, post.ID)
	if err != nil {
		s.Log.Error("delete post", "err", err)
		http.Error(w, "could not delete post", http.StatusInternalServerError)
		return
	}
	s.removeUploads(images...)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePinPost(w http.ResponseWriter, r *http.Request, _ *models.User) {
	post, err := models.GetPost(s.DB, urlID(r))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := models.SetPostPinned(s.DB, post.ID, !post.IsPinned); err != nil {
		http.Error(w, "could not pin post", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/post/"+itoa(post.ID), http.StatusSeeOther)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.GetCategory(s.DB, urlID(r))
	if errors.Is(err, models.ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	posts, err := models.ListPostsByCategory(s.DB, category.ID)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, "category", map[string]any{
		"Category": category,
		"Posts":    posts,
		"User":     s.currentUser(r),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	posts, err := models.SearchPosts(s.DB, query)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, "search", map[string]any{
		"Query": query,
		"Posts": posts,
		"User":  s.currentUser(r),
	})
}
