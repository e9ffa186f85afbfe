package shelterpets

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

type Options struct {
	Uploader assets.Uploader
	Authn    func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	shelterOnly := middleware.RequireRoles(auth.RoleShelter)

	r.Route("/shelter-pets", func(sr chi.Router) {
		sr.Use(opts.Authn, shelterOnly)
		sr.Post("/", createShelterPetHandler(svc, opts.Uploader))
		sr.Get("/", listShelterPetsHandler(svc))
		sr.Get("/{id}", getShelterPetHandler(svc))
		sr.Put("/{id}", updateShelterPetHandler(svc))
		sr.Delete("/{id}", deleteShelterPetHandler(svc))
		sr.Post("/{id}/care-log", addCareLogHandler(svc))
		sr.Put("/{id}/adoption-status", updateAdoptionStatusHandler(svc))
	})
}

type shelterPetResponse struct {
	ID             string         `json:"_id"`
	ShelterID      string         `json:"shelter"`
	Name           string         `json:"name"`
	Breed          string         `json:"breed,omitempty"`
	Age            int            `json:"age,omitempty"`
	HealthStatus   string         `json:"healthStatus,omitempty"`
	Images         []string       `json:"images"`
	CareLogs       []CareLog      `json:"careLogs"`
	AdoptionStatus AdoptionStatus `json:"adoptionStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func toShelterPetResponse(p ShelterPet) shelterPetResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	logs := p.CareLogs
	if logs == nil {
		logs = []CareLog{}
	}
	return shelterPetResponse{
		ID:             p.ID,
		ShelterID:      p.ShelterID,
		Name:           p.Name,
		Breed:          p.Breed,
		Age:            p.Age,
		HealthStatus:   p.HealthStatus,
		Images:         images,
		CareLogs:       logs,
		AdoptionStatus: p.AdoptionStatus,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type createShelterPetRequest struct {
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	Age          int    `json:"age"`
	HealthStatus string `json:"healthStatus"`
}

func createShelterPetHandler(svc *Service, up assets.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req createShelterPetRequest
		var images []string

		if uploads.IsMultipart(r) {
			if err := r.ParseMultipartForm(uploads.MaxMemory); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid form")
				return
			}
			age, _ := strconv.Atoi(r.FormValue("age"))
			req = createShelterPetRequest{
				Name:         r.FormValue("name"),
				Breed:        r.FormValue("breed"),
				Age:          age,
				HealthStatus: r.FormValue("healthStatus"),
			}

			urls, err := uploads.RelayFormFiles(r.Context(), r, "images", maxImages, up)
			if err == uploads.ErrTooManyFiles {
				httpx.Fail(w, http.StatusBadRequest, "Maximum 3 images allowed")
				return
			}
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "image upload failed")
				return
			}
			images = urls
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		p, err := svc.Create(r.Context(), identity.ID, CreateInput{
			Name:         req.Name,
			Breed:        req.Breed,
			Age:          req.Age,
			HealthStatus: req.HealthStatus,
			Images:       images,
		})
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Pet name is required")
			return
		}

		httpx.OK(w, http.StatusCreated, "Shelter pet added successfully", toShelterPetResponse(p))
	}
}

func listShelterPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListByShelter(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]shelterPetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toShelterPetResponse(p))
		}
		httpx.OK(w, http.StatusOK, "Shelter pets retrieved successfully", out)
	}
}

func getShelterPetHandler(svc *Service) http.HandlerFunc {
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

		httpx.OK(w, http.StatusOK, "Shelter pet retrieved successfully", toShelterPetResponse(p))
	}
}

type updateShelterPetRequest struct {
	Name         *string  `json:"name"`
	Breed        *string  `json:"breed"`
	Age          *int     `json:"age"`
	HealthStatus *string  `json:"healthStatus"`
	Images       []string `json:"images"`
}

func updateShelterPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req updateShelterPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), identity, UpdateInput{
			Name:         req.Name,
			Breed:        req.Breed,
			Age:          req.Age,
			HealthStatus: req.HealthStatus,
			Images:       req.Images,
		})
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "A listing allows at most 3 images")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Shelter pet updated successfully", toShelterPetResponse(p))
	}
}

func deleteShelterPetHandler(svc *Service) http.HandlerFunc {
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

		httpx.OK(w, http.StatusOK, "Shelter pet deleted successfully", nil)
	}
}

type careLogRequest struct {
	Feeding  string `json:"feeding"`
	Grooming string `json:"grooming"`
	Medical  string `json:"medical"`
}

func addCareLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req careLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.AddCareLog(r.Context(), chi.URLParam(r, "id"), identity, CareLogInput{
			Feeding:  req.Feeding,
			Grooming: req.Grooming,
			Medical:  req.Medical,
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

		httpx.OK(w, http.StatusOK, "Care log added successfully", toShelterPetResponse(p))
	}
}

type adoptionStatusRequest struct {
	AdoptionStatus AdoptionStatus `json:"adoptionStatus"`
}

func updateAdoptionStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req adoptionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.UpdateAdoptionStatus(r.Context(), chi.URLParam(r, "id"), identity, req.AdoptionStatus)
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "adoptionStatus must be one of: available, adopted, pending")
			return
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

		httpx.OK(w, http.StatusOK, "Adoption status updated successfully", toShelterPetResponse(p))
	}
}
