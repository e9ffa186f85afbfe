package ratings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// RegisterRoutes monta las rutas de ratings.
// authn se aplica solo al POST: el promedio es público.
func RegisterRoutes(r chi.Router, svc *Service, authn func(http.Handler) http.Handler) {
	r.Route("/ratings", func(rr chi.Router) {
		rr.With(authn, middleware.RequireRoles(auth.RoleOwner)).
			Post("/{targetType}/{targetId}", addRatingHandler(svc))
		rr.Get("/{targetType}/{targetId}/average", averageRatingHandler(svc))
	})
}

type addRatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func addRatingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Access denied. No role assigned.")
			return
		}

		var req addRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		targetType := chi.URLParam(r, "targetType")

		err := svc.AddOrUpdate(r.Context(), AddInput{
			TargetType: targetType,
			TargetID:   chi.URLParam(r, "targetId"),
			RaterID:    identity.ID,
			Score:      req.Rating,
			Comment:    req.Comment,
		})
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		case ErrInvalidTarget:
			httpx.Fail(w, http.StatusBadRequest, "Invalid targetType, must be 'user' or 'product'")
			return
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Only vets or shelters can receive ratings")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		label := "Product"
		if TargetType(targetType) == TargetUser {
			label = "User"
		}
		httpx.OK(w, http.StatusOK, label+" rating added or updated successfully", nil)
	}
}

func averageRatingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Average(r.Context(), chi.URLParam(r, "targetType"), chi.URLParam(r, "targetId"))
		switch err {
		case nil:
		case ErrInvalidTarget:
			httpx.Fail(w, http.StatusBadRequest, "Invalid targetType, must be 'user' or 'product'")
			return
		case ErrNotFound, ErrInvalidInput:
			httpx.Fail(w, http.StatusNotFound, "Not found")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Average rating retrieved successfully", sum)
	}
}
