package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pagepilot/internal/config"
	"pagepilot/internal/handler"
	"pagepilot/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Author   *handler.AuthorHandler
	Book     *handler.BookHandler
	Favorite *handler.FavoriteHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/authentication", func(auth chi.Router) {
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.With(authMiddleware.RequireAuth).Get("/profile", h.Auth.Profile)
	})

	r.Route("/favorites", func(fav chi.Router) {
		fav.Use(authMiddleware.RequireAuth)
		fav.Post("/", h.Favorite.Add)
		fav.Get("/", h.Favorite.List)
		fav.Get("/stats", h.Favorite.Stats)
		fav.Get("/{bookId}/status", h.Favorite.Status)
		fav.Delete("/{bookId}", h.Favorite.Remove)
	})

	r.Route("/authors", func(authors chi.Router) {
		authors.With(authMiddleware.OptionalAuth).Get("/", h.Author.List)
		authors.With(authMiddleware.OptionalAuth).Get("/{id}", h.Author.Get)
		authors.With(authMiddleware.OptionalAuth).Get("/{id}/books", h.Author.Books)
		authors.With(authMiddleware.RequireAuth).Post("/", h.Author.Create)
		authors.With(authMiddleware.RequireAuth).Put("/{id}", h.Author.Update)
		authors.With(authMiddleware.RequireAuth).Delete("/{id}", h.Author.Delete)
	})

	r.Route("/books", func(books chi.Router) {
		books.With(authMiddleware.OptionalAuth).Get("/", h.Book.List)
		books.With(authMiddleware.OptionalAuth).Get("/{id}", h.Book.Get)
		books.With(authMiddleware.RequireAuth).Post("/", h.Book.Create)
		books.With(authMiddleware.RequireAuth).Put("/{id}", h.Book.Update)
		books.With(authMiddleware.RequireAuth).Delete("/{id}", h.Book.Delete)
	})

	return r
}
