package healthrecords

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/domain/pets"
	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// PetDirectory resuelve pets para la ruta de records del vet.
type PetDirectory interface {
	GetByID(ctx context.Context, petID string) (pets.Pet, error)
}

type Options struct {
	Pets  PetDirectory
	Authn func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	ownerOrVet := middleware.RequireRoles(auth.RoleOwner, auth.RoleVet)

	r.Route("/health-record", func(hr chi.Router) {
		hr.Use(opts.Authn, ownerOrVet)
		hr.Post("/", createRecordHandler(svc))
		hr.Get("/{petId}", listRecordsHandler(svc))
		hr.Put("/{id}", updateRecordHandler(svc))
		hr.Delete("/{id}", deleteRecordHandler(svc))
	})

	// Historial clínico visto por el vet: requiere appointment con el pet.
	r.With(opts.Authn, middleware.RequireRoles(auth.RoleVet, auth.RoleAdmin)).
		Get("/pets/{petId}/records", petRecordsForVetHandler(svc, opts.Pets))
}

type recordResponse struct {
	ID              string     `json:"_id"`
	PetID           string     `json:"pet"`
	VaccinationDate *time.Time `json:"vaccinationDate,omitempty"`
	Illness         string     `json:"illness,omitempty"`
	Treatment       *Treatment `json:"treatment,omitempty"`
	Insurance       *Insurance `json:"insurance,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:              rec.ID,
		PetID:           rec.PetID,
		VaccinationDate: rec.VaccinationDate,
		Illness:         rec.Illness,
		Treatment:       rec.Treatment,
		Insurance:       rec.Insurance,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

type treatmentPayload struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Vet         string `json:"vet"`
}

func (t *treatmentPayload) toDomain() (*Treatment, error) {
	if t == nil {
		return nil, nil
	}
	out := &Treatment{
		Description: strings.TrimSpace(t.Description),
		VetID:       strings.TrimSpace(t.Vet),
	}
	if strings.TrimSpace(t.Date) != "" {
		d, err := parseDate(t.Date)
		if err != nil {
			return nil, err
		}
		out.Date = &d
	}
	return out, nil
}

type createRecordRequest struct {
	Pet             string            `json:"pet"`
	VaccinationDate string            `json:"vaccinationDate"`
	Illness         string            `json:"illness"`
	Treatment       *treatmentPayload `json:"treatment"`
	Insurance       *Insurance        `json:"insurance"`
}

func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.Pet) == "" {
			httpx.Fail(w, http.StatusBadRequest, "Pet ID is required")
			return
		}

		in := CreateInput{
			PetID:   req.Pet,
			Illness: req.Illness,
		}
		if strings.TrimSpace(req.VaccinationDate) != "" {
			d, err := parseDate(req.VaccinationDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "vaccinationDate must be YYYY-MM-DD or RFC3339")
				return
			}
			in.VaccinationDate = &d
		}
		treatment, err := req.Treatment.toDomain()
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "treatment date must be YYYY-MM-DD or RFC3339")
			return
		}
		in.Treatment = treatment
		in.Insurance = req.Insurance

		rec, err := svc.Create(r.Context(), identity, in)
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Pet ID is required")
			return
		case ErrPastVaccinationDate:
			httpx.Fail(w, http.StatusBadRequest, "Vaccination dates must be strictly in the future (not today or past)")
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

		httpx.OK(w, http.StatusCreated, "Health record created successfully", toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListByPet(r.Context(), identity, chi.URLParam(r, "petId"))
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

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpx.OK(w, http.StatusOK, "Health records retrieved successfully", out)
	}
}

type updateRecordRequest struct {
	VaccinationDate *string           `json:"vaccinationDate"`
	Illness         *string           `json:"illness"`
	Treatment       *treatmentPayload `json:"treatment"`
	Insurance       *Insurance        `json:"insurance"`
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{Illness: req.Illness, Insurance: req.Insurance}
		if req.VaccinationDate != nil {
			d, err := parseDate(*req.VaccinationDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "vaccinationDate must be YYYY-MM-DD or RFC3339")
				return
			}
			in.VaccinationDate = &d
		}
		if req.Treatment != nil {
			treatment, err := req.Treatment.toDomain()
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "treatment date must be YYYY-MM-DD or RFC3339")
				return
			}
			in.Treatment = treatment
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "id"), identity, in)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Health record not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		case ErrPastVaccinationDate:
			httpx.Fail(w, http.StatusBadRequest, "Vaccination dates must be strictly in the future (not today or past)")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Health record updated successfully", toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		err := svc.Delete(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Health record not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Health record deleted successfully", nil)
	}
}

func petRecordsForVetHandler(svc *Service, petDir PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())
		petID := chi.URLParam(r, "petId")

		// Gate: el vet solo entra si un appointment lo liga al pet.
		// Admin pasa directo (la ruta lo admite).
		if identity.Role == auth.RoleVet {
			ok, err := svc.appointments.HasAppointment(r.Context(), identity.ID, petID)
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !ok {
				httpx.Fail(w, http.StatusForbidden, "Access denied. No appointment found with this pet.")
				return
			}
		}

		pet, err := petDir.GetByID(r.Context(), petID)
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
			return
		}

		items, err := svc.ListForPet(r.Context(), petID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		records := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			records = append(records, toRecordResponse(rec))
		}

		httpx.OK(w, http.StatusOK, "Pet medical records retrieved successfully", map[string]any{
			"pet":           pet,
			"healthRecords": records,
		})
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
