package articles

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

type Options struct {
	Authn func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	adminOnly := middleware.RequireRoles(auth.RoleAdmin)

	r.Route("/articles", func(ar chi.Router) {
		// lectura pública
		ar.Get("/", listArticlesHandler(svc))
		ar.Get("/{id}", getArticleHandler(svc))

		ar.With(opts.Authn, adminOnly).Post("/", createArticleHandler(svc))
		ar.With(opts.Authn, adminOnly).Put("/{id}", updateArticleHandler(svc))
		ar.With(opts.Authn, adminOnly).Delete("/{id}", deleteArticleHandler(svc))
	})
}

type articleResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toArticleResponse(a Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Category:  a.Category,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type createArticleRequest struct {
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Content  string   `json:"content"`
}

func createArticleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
		})
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Title, category and content are required")
			return
		}

		httpx.OK(w, http.StatusCreated, "Care article created successfully", toArticleResponse(a))
	}
}

func listArticlesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := Category(r.URL.Query().Get("category"))

		items, err := svc.List(r.Context(), category)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]articleResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toArticleResponse(a))
		}
		httpx.OK(w, http.StatusOK, "Care articles retrieved successfully", out)
	}
}

func getArticleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Article not found")
			return
		}

		httpx.OK(w, http.StatusOK, "Care article retrieved successfully", toArticleResponse(a))
	}
}

type updateArticleRequest struct {
	Title    *string   `json:"title"`
	Category *Category `json:"category"`
	Content  *string   `json:"content"`
}

func updateArticleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
		})
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Article not found")
			return
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Invalid category")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Care article updated successfully", toArticleResponse(a))
	}
}

func deleteArticleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Article not found")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Care article deleted successfully", nil)
	}
}
