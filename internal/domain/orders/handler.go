package orders

import (
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
	ownerOnly := middleware.RequireRoles(auth.RoleOwner)

	r.Route("/orders", func(or chi.Router) {
		or.Use(opts.Authn, ownerOnly)
		or.Post("/", placeOrderHandler(svc))
		or.Get("/", listOrdersHandler(svc))
		or.Put("/{id}/cancel", cancelOrderHandler(svc))
	})
}

type orderResponse struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Products    []Line    `json:"products"`
	TotalAmount float64   `json:"totalAmount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOrderResponse(o Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Products:    o.Products,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func placeOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		o, err := svc.Place(r.Context(), identity.ID)
		switch err {
		case nil:
		case ErrEmptyCart:
			httpx.Fail(w, http.StatusBadRequest, "Cart is empty")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusCreated, "Order placed successfully", toOrderResponse(o))
	}
}

func listOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		items, err := svc.ListOwn(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]orderResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOrderResponse(o))
		}
		httpx.OK(w, http.StatusOK, "Orders retrieved successfully", out)
	}
}

func cancelOrderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		o, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"), identity)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "Order not found")
			return
		case ErrForbidden:
			httpx.Fail(w, http.StatusForbidden, "Access denied. Unauthorized.")
			return
		case ErrNotCancellable:
			httpx.Fail(w, http.StatusBadRequest, "Only placed orders can be cancelled")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Order cancelled successfully", toOrderResponse(o))
	}
}
