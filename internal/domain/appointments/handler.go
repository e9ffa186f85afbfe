package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/domain/pets"
	"github.com/asif7480/FurShield-backend/internal/domain/users"
	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// UserDirectory resuelve cuentas para popular owner/vet en los listados.
type UserDirectory interface {
	Profile(ctx context.Context, userID string) (users.User, error)
}

// PetDirectory resuelve pets para popular el pet en los listados.
type PetDirectory interface {
	GetByID(ctx context.Context, petID string) (pets.Pet, error)
}

type Options struct {
	Users UserDirectory
	Pets  PetDirectory
	Authn func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleOwner)).
			Post("/", createAppointmentHandler(svc))
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleAdmin)).
			Get("/", listAllHandler(svc))
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleOwner)).
			Get("/owner", ownerAppointmentsHandler(svc, opts))
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleVet)).
			Get("/vet", vetAppointmentsHandler(svc, opts))
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleVet)).
			Put("/{id}", updateAppointmentHandler(svc))
		ar.With(opts.Authn, middleware.RequireRoles(auth.RoleOwner, auth.RoleVet)).
			Delete("/{id}", deleteAppointmentHandler(svc))
	})
}

type petSummary struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

type userSummary struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
}

type appointmentResponse struct {
	ID                   string       `json:"_id"`
	PetID                string       `json:"pet"`
	OwnerID              string       `json:"owner"`
	VetID                string       `json:"vet"`
	Pet                  *petSummary  `json:"petInfo,omitempty"`
	Owner                *userSummary `json:"ownerInfo,omitempty"`
	Vet                  *userSummary `json:"vetInfo,omitempty"`
	Date                 time.Time    `json:"date"`
	Status               Status       `json:"status"`
	Diagnosis            string       `json:"diagnosis,omitempty"`
	PrescribedMedication []string     `json:"prescribedMedication,omitempty"`
	FollowUp             *time.Time   `json:"followUp,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                   a.ID,
		PetID:                a.PetID,
		OwnerID:              a.OwnerID,
		VetID:                a.VetID,
		Date:                 a.Date,
		Status:               a.Status,
		Diagnosis:            a.Diagnosis,
		PrescribedMedication: a.PrescribedMedication,
		FollowUp:             a.FollowUp,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// populate rellena pet/owner/vet best-effort; una referencia rota no tumba
// el listado (no hay cascada de borrado, así que pueden existir huérfanos).
func populate(ctx context.Context, resp *appointmentResponse, opts Options, withOwner, withVet bool) {
	if opts.Pets != nil {
		if p, err := opts.Pets.GetByID(ctx, resp.PetID); err == nil {
			resp.Pet = &petSummary{ID: p.ID, Name: p.Name, Species: p.Species}
		}
	}
	if opts.Users == nil {
		return
	}
	if withOwner {
		if u, err := opts.Users.Profile(ctx, resp.OwnerID); err == nil {
			resp.Owner = &userSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	if withVet {
		if u, err := opts.Users.Profile(ctx, resp.VetID); err == nil {
			v := &userSummary{ID: u.ID, Name: u.Name, Email: u.Email}
			if u.Vet != nil {
				v.Specialization = u.Vet.Specialization
			}
			resp.Vet = v
		}
	}
}

type createAppointmentRequest struct {
	Pet  string `json:"pet"`
	Vet  string `json:"vet"`
	Date string `json:"date"`
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		if req.Pet == "" || req.Vet == "" || req.Date == "" {
			httpx.Fail(w, http.StatusBadRequest, "Pet, Vet and Date are required")
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
			return
		}

		a, err := svc.Create(r.Context(), identity.ID, CreateInput{
			PetID: req.Pet,
			VetID: req.Vet,
			Date:  date,
		})
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Pet, Vet and Date are required")
			return
		case ErrPastDate:
			httpx.Fail(w, http.StatusBadRequest, "Appointment date must be in the future (not today or past)")
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

		httpx.OK(w, http.StatusCreated, "Appointment created successfully", toResponse(a))
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		httpx.OK(w, http.StatusOK, "Appointments retrieved successfully", out)
	}
}

func ownerAppointmentsHandler(svc *Service, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListByOwner(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			resp := toResponse(a)
			populate(r.Context(), &resp, opts, false, true)
			out = append(out, resp)
		}
		httpx.OK(w, http.StatusOK, "Owner appointments retrieved successfully", out)
	}
}

func vetAppointmentsHandler(svc *Service, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListByVet(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			resp := toResponse(a)
			populate(r.Context(), &resp, opts, true, false)
			out = append(out, resp)
		}
		httpx.OK(w, http.StatusOK, "Vet appointments retrieved successfully", out)
	}
}

type updateAppointmentRequest struct {
	Status               *string   `json:"status"`
	Date                 *string   `json:"date"`
	Diagnosis            *string   `json:"diagnosis"`
	PrescribedMedication *[]string `json:"prescribedMedication"`
	FollowUp             *string   `json:"followUp"`
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req updateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Status:               req.Status,
			Diagnosis:            req.Diagnosis,
			PrescribedMedication: req.PrescribedMedication,
		}
		if req.Date != nil {
			d, err := parseDate(*req.Date)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
				return
			}
			in.Date = &d
		}
		if req.FollowUp != nil {
			d, err := parseDate(*req.FollowUp)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "followUp must be YYYY-MM-DD or RFC3339")
				return
			}
			in.FollowUp = &d
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "id"), identity, in)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Appointment not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "invalid status")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Appointment updated successfully", toResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		err := svc.Delete(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Appointment not found or not yours")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Appointment not found or not yours")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Appointment deleted successfully", nil)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
