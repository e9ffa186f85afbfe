package notifications

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
	r.Route("/notifications", func(nr chi.Router) {
		nr.Use(opts.Authn)
		nr.With(middleware.RequireRoles(auth.RoleAdmin)).Post("/", createNotificationHandler(svc))
		nr.Get("/", listNotificationsHandler(svc))
		nr.Put("/{id}/read", markAsReadHandler(svc))
	})
}

type notificationResponse struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type createNotificationRequest struct {
	User    string `json:"user"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func createNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNotificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		n, err := svc.Create(r.Context(), CreateInput{
			UserID:  req.User,
			Title:   req.Title,
			Message: req.Message,
		})
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "User, title and message are required")
			return
		}

		httpx.OK(w, http.StatusCreated, "Notification created successfully", toNotificationResponse(n))
	}
}

func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListOwn(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNotificationResponse(n))
		}
		httpx.OK(w, http.StatusOK, "Notifications retrieved successfully", out)
	}
}

func markAsReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		n, err := svc.MarkRead(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Notification not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Notification marked as read", toNotificationResponse(n))
	}
}
