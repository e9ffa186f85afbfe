package carts

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/domain/products"
	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// ProductDirectory resuelve snapshots de producto para "popular" el cart.
type ProductDirectory interface {
	GetByID(ctx context.Context, id string) (products.Product, error)
}

type Options struct {
	Products ProductDirectory
	Authn    func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	ownerOnly := middleware.RequireRoles(auth.RoleOwner)

	r.Route("/cart", func(cr chi.Router) {
		cr.Use(opts.Authn, ownerOnly)
		cr.Post("/", addToCartHandler(svc))
		cr.Get("/", getCartHandler(svc, opts.Products))
		cr.Put("/", updateCartItemHandler(svc))
		cr.Delete("/item", removeFromCartHandler(svc))
		cr.Delete("/clear", clearCartHandler(svc))
	})
}

type productSnapshot struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type itemResponse struct {
	ProductID string           `json:"product"`
	Product   *productSnapshot `json:"productInfo,omitempty"`
	Quantity  int              `json:"quantity"`
}

type cartResponse struct {
	ID        string         `json:"_id,omitempty"`
	OwnerID   string         `json:"owner"`
	Items     []itemResponse `json:"items"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}

func toCartResponse(c Cart) cartResponse {
	items := make([]itemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, itemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return cartResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type cartItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

func addToCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req cartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Add(r.Context(), identity.ID, req.Product, req.Quantity)
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Product ID is required")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Product added to cart", toCartResponse(c))
	}
}

func getCartHandler(svc *Service, dir ProductDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		c, err := svc.Get(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		if len(c.Items) == 0 {
			httpx.OK(w, http.StatusOK, "Cart is empty", cartResponse{OwnerID: identity.ID, Items: []itemResponse{}})
			return
		}

		resp := toCartResponse(c)
		// Populate best-effort: un producto borrado deja la línea sin snapshot.
		for i, it := range resp.Items {
			if p, err := dir.GetByID(r.Context(), it.ProductID); err == nil {
				resp.Items[i].Product = &productSnapshot{
					ID:    p.ID,
					Name:  p.Name,
					Price: p.Price,
					Image: p.Image,
				}
			}
		}

		httpx.OK(w, http.StatusOK, "Cart retrieved successfully", resp)
	}
}

func updateCartItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req cartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.SetQuantity(r.Context(), identity.ID, req.Product, req.Quantity)
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Product ID and quantity required")
			return
		case ErrCartNotFound:
			httpx.Fail(w, http.StatusNotFound, "Cart not found")
			return
		case ErrItemNotFound:
			httpx.Fail(w, http.StatusNotFound, "Item not found in cart")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Cart item updated", toCartResponse(c))
	}
}

func removeFromCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		var req cartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Remove(r.Context(), identity.ID, req.Product)
		switch err {
		case nil:
		case ErrInvalidInput:
			httpx.Fail(w, http.StatusBadRequest, "Product ID is required")
			return
		case ErrCartNotFound:
			httpx.Fail(w, http.StatusNotFound, "Cart not found")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Item removed from cart", toCartResponse(c))
	}
}

func clearCartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.GetIdentity(r.Context())

		c, err := svc.Clear(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Cart cleared successfully", toCartResponse(c))
	}
}
