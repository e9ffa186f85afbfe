package pets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/platform/uploads"
	"github.com/asif7480/FurShield-backend/internal/ports/assets"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// Options de las rutas de pets. Owners es el directorio de cuentas para
// "popular" el owner en el listado público.
type Options struct {
	Uploader assets.Uploader
	Owners   auth.IdentityStore
	Authn    func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	ownerOrAdmin := middleware.RequireRoles(auth.RoleOwner, auth.RoleAdmin)

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, opts.Owners)) // público

		pr.With(opts.Authn, ownerOrAdmin).Post("/", createPetHandler(svc, opts.Uploader))
		pr.With(opts.Authn, ownerOrAdmin).Get("/ownerPets", ownerPetsHandler(svc))
		pr.With(opts.Authn, ownerOrAdmin).Get("/{id}", getPetHandler(svc))
		pr.With(opts.Authn, ownerOrAdmin).Put("/{id}", updatePetHandler(svc))
		pr.With(opts.Authn, ownerOrAdmin).Delete("/{id}", deletePetHandler(svc))
	})
}

type ownerSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type petResponse struct {
	ID             string        `json:"_id"`
	OwnerID        string        `json:"owner"`
	Owner          *ownerSummary `json:"ownerInfo,omitempty"`
	Name           string        `json:"name"`
	Species        string        `json:"species"`
	Breed          string        `json:"breed,omitempty"`
	Age            int           `json:"age,omitempty"`
	Gender         string        `json:"gender,omitempty"`
	MedicalHistory string        `json:"medicalHistory,omitempty"`
	Image          string        `json:"image,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Age:            p.Age,
		Gender:         p.Gender,
		MedicalHistory: p.MedicalHistory,
		Image:          p.Image,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type createPetRequest struct {
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medicalHistory"`
}

func createPetHandler(svc *Service, up assets.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Token not found")
			return
		}

		var req createPetRequest
		image := ""

		if uploads.IsMultipart(r) {
			if err := r.ParseMultipartForm(uploads.MaxMemory); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid form")
				return
			}
			age, _ := strconv.Atoi(r.FormValue("age"))
			req = createPetRequest{
				Name:           r.FormValue("name"),
				Species:        r.FormValue("species"),
				Breed:          r.FormValue("breed"),
				Age:            age,
				Gender:         r.FormValue("gender"),
				MedicalHistory: r.FormValue("medicalHistory"),
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

		p, err := svc.Create(r.Context(), identity.ID, CreateInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Age:            req.Age,
			Gender:         req.Gender,
			MedicalHistory: req.MedicalHistory,
			Image:          image,
		})
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Name and species are required")
			return
		}

		httpx.OK(w, http.StatusCreated, "Pet created successfully", toPetResponse(p))
	}
}

func listPetsHandler(svc *Service, owners auth.IdentityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			resp := toPetResponse(p)
			// Popular el owner es best-effort: un owner borrado no
			// rompe el listado público.
			if owner, err := owners.FindIdentity(r.Context(), p.OwnerID); err == nil {
				resp.Owner = &ownerSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}
			}
			out = append(out, resp)
		}

		httpx.OK(w, http.StatusOK, "Pets retrieved successfully", out)
	}
}

func ownerPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListByOwner(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.OK(w, http.StatusOK, "Pets retrieved successfully", out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Pet retrieved successfully", toPetResponse(p))
	}
}

type updatePetRequest struct {
	Name           *string `json:"name"`
	Species        *string `json:"species"`
	Breed          *string `json:"breed"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	MedicalHistory *string `json:"medicalHistory"`
	Image          *string `json:"image"`
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), identity, UpdateInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Age:            req.Age,
			Gender:         req.Gender,
			MedicalHistory: req.MedicalHistory,
			Image:          req.Image,
		})
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Pet updated successfully", toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		err := svc.Delete(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Pet deleted successfully", nil)
	}
}
