package products

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/domain/ratings"
	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/platform/uploads"
	"github.com/asif7480/FurShield-backend/internal/ports/assets"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

type Options struct {
	Uploader assets.Uploader
	Authn    func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	adminOrShelter := middleware.RequireRoles(auth.RoleAdmin, auth.RoleShelter)

	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", listProductsHandler(svc)) // público

		pr.With(opts.Authn, adminOrShelter).Post("/", createProductHandler(svc, opts.Uploader))
		pr.With(opts.Authn, adminOrShelter).Put("/{id}", updateProductHandler(svc))
		pr.With(opts.Authn, adminOrShelter).Delete("/{id}", deleteProductHandler(svc))
	})
}

type productResponse struct {
	ID          string           `json:"_id"`
	Name        string           `json:"name"`
	Category    Category         `json:"category"`
	Price       float64          `json:"price"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image,omitempty"`
	Ratings     []ratings.Rating `json:"ratings"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toProductResponse(p Product) productResponse {
	rs := p.Ratings
	if rs == nil {
		rs = []ratings.Rating{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Ratings:     rs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]productResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProductResponse(p))
		}
		httpx.OK(w, http.StatusOK, "Products retrieved successfully.", out)
	}
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
}

func createProductHandler(svc *Service, up assets.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		image := ""

		if uploads.IsMultipart(r) {
			if err := r.ParseMultipartForm(uploads.MaxMemory); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid form")
				return
			}
			price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
			req = createProductRequest{
				Name:        r.FormValue("name"),
				Category:    Category(r.FormValue("category")),
				Price:       price,
				Description: r.FormValue("description"),
			}

			url, err := uploads.RelayFormFile(r.Context(), r, "image", up)
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "image upload failed")
				return
			}
			image = url
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Category:    req.Category,
			Price:       req.Price,
			Description: req.Description,
			Image:       image,
		})
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Input all fields")
			return
		case ErrDuplicate:
			// El original responde 400, no 409.
			httpx.Fail(w, http.StatusBadRequest, "Product already exists")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusCreated, "New product added.", toProductResponse(p))
	}
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
}

func updateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Name:        req.Name,
			Category:    req.Category,
			Price:       req.Price,
			Description: req.Description,
			Image:       req.Image,
		})
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Product not found.")
			return
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Invalid category")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Product updated successfully", toProductResponse(p))
	}
}

func deleteProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Product not found.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Product has been deleted successfully.", nil)
	}
}
