package server

import (
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"agora/internal/metrics"
	"agora/internal/middleware"
	"agora/internal/models"
)

type Server struct {
	DB         *sql.DB
	Log        *slog.Logger
	UploadDir  string
	SessionTTL time.Duration

	tmpl map[string]*template.Template

	CookieName string
}

func New(db *sql.DB, log *slog.Logger, templateDir, uploadDir string, sessionTTL time.Duration) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return &Server{
		DB:         db,
		Log:        log,
		UploadDir:  uploadDir,
		SessionTTL: sessionTTL,
		tmpl:       templates,
		CookieName: "session_id",
	}, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Get("/", s.handleHome)
	r.HandleFunc("/register", s.handleRegister)
	r.HandleFunc("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.HandleFunc("/post/new", s.requireAuth(s.handleNewPost))
	r.Get("/post/{id}", s.handlePost)
	r.HandleFunc("/post/{id}/edit", s.requireAuth(s.handleEditPost))
	r.Post("/post/{id}/delete", s.requireAuth(s.handleDeletePost))
	r.Post("/post/{id}/comment", s.requireAuth(s.handleComment))
	r.Post("/post/{id}/pin", s.requireAdmin(s.handlePinPost))
	r.Post("/comment/{id}/delete", s.requireAuth(s.handleDeleteComment))

	r.Get("/category/{id}", s.handleCategory)
	r.Get("/search", s.handleSearch)
	r.HandleFunc("/profile", s.requireAuth(s.handleProfile))

	r.Get("/admin", s.requireAdmin(s.handleAdmin))
	r.Post("/admin/user/{id}/delete", s.requireAdmin(s.handleAdminDeleteUser))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.UploadDir))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.Log.Error("render", "template", name, "err", err)
	}
}

// middleware
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) requireAdmin(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "not authorized", http.StatusForbidden)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sess, err := models.GetSession(s.DB, cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}

// helpers
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func urlID(r *http.Request) int {
	return atoi(chi.URLParam(r, "id"))
}
