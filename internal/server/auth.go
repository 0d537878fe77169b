package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agora/internal/metrics"
	"agora/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "register", map[string]any{"User": s.currentUser(r)})

	case http.MethodPost:
		username := r.FormValue("username")
		email := r.FormValue("email")
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		fail := func(msg string) {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "register", map[string]any{"Error": msg, "Username": username, "Email": email})
		}
		if username == "" || email == "" || password == "" || confirm == "" {
			fail("Please fill in all fields")
			return
		}
		if password != confirm {
			fail("Passwords do not match")
			return
		}
		if len(password) < 6 {
			fail("Password must be at least 6 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		id, err := models.CreateUser(s.DB, username, email, string(hash))
		if errors.Is(err, models.ErrDuplicateUsername) || errors.Is(err, models.ErrDuplicateEmail) {
			fail("Username or email already exists")
			return
		}
		if err != nil {
			s.Log.Error("register", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		metrics.UsersRegistered.Inc()
		// auto login after registration
		if err := s.startSession(w, int(id)); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "login", map[string]any{"User": s.currentUser(r)})

	case http.MethodPost:
		identifier := r.FormValue("identifier")
		password := r.FormValue("password")
		fail := func() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "login", map[string]any{"Error": models.ErrInvalidCredentials.Error()})
		}
		if identifier == "" || password == "" {
			fail()
			return
		}
		user, err := models.GetUserByLogin(s.DB, identifier)
		if err != nil {
			fail()
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			fail()
			return
		}
		if err := s.startSession(w, user.ID); err != nil {
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.CookieName)
	if err == nil {
		if err := models.RevokeSession(s.DB, cookie.Value); err != nil {
			s.Log.Warn("revoke session", "err", err)
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) startSession(w http.ResponseWriter, userID int) error {
	sid := uuid.NewString()
	expires := time.Now().Add(s.SessionTTL)
	if err := models.CreateSession(s.DB, userID, sid, expires); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: s.CookieName, Value: sid, Path: "/", Expires: expires, HttpOnly: true})
	return nil
}
