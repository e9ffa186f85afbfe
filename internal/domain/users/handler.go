package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asif7480/FurShield-backend/internal/middleware"
	"github.com/asif7480/FurShield-backend/internal/platform/httpx"
	"github.com/asif7480/FurShield-backend/internal/platform/uploads"
	"github.com/asif7480/FurShield-backend/internal/platform/validation"
	"github.com/asif7480/FurShield-backend/internal/ports/assets"
	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

// Options agrupa lo que necesitan las rutas de auth además del service.
type Options struct {
	Issuer       auth.TokenIssuer
	Uploader     assets.Uploader
	Authn        func(http.Handler) http.Handler
	SecureCookie bool
}

func RegisterRoutes(r chi.Router, svc *Service, opts Options) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, opts.Uploader))
		ar.Post("/login", loginHandler(svc, opts.Issuer, opts.SecureCookie))
		ar.Post("/forgotPassword", forgotPasswordHandler(svc))
		ar.Post("/resetPassword/{token}", resetPasswordHandler(svc))
		ar.Post("/logout", logoutHandler(opts.SecureCookie))

		ar.With(opts.Authn).Get("/profile", profileHandler(svc))
		ar.With(opts.Authn).Put("/update-profile", updateProfileHandler(svc))
	})

	// Listados administrativos
	r.Route("/users", func(ur chi.Router) {
		ur.Use(opts.Authn, middleware.RequireRoles(auth.RoleAdmin))
		ur.Get("/owners", listByRoleHandler(svc, auth.RoleOwner, "Owners retrieved successfully."))
		ur.Get("/vets", listByRoleHandler(svc, auth.RoleVet, "Vets retrieved successfully."))
		ur.Get("/shelters", listByRoleHandler(svc, auth.RoleShelter, "Shelters retrieved successfully."))
	})
}

type registerRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	ContactNumber      string   `json:"contactNumber"`
	Address            string   `json:"address"`
	Password           string   `json:"password"`
	Role               string   `json:"role"`
	Specialization     string   `json:"specialization"`
	Experience         string   `json:"experience"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
	ShelterName        string   `json:"shelterName"`
	ContactPerson      string   `json:"contactPerson"`
}

func registerHandler(svc *Service, up assets.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		profileImg := ""

		if uploads.IsMultipart(r) {
			if err := r.ParseMultipartForm(uploads.MaxMemory); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid form")
				return
			}
			req = registerRequest{
				Name:           r.FormValue("name"),
				Email:          r.FormValue("email"),
				ContactNumber:  r.FormValue("contactNumber"),
				Address:        r.FormValue("address"),
				Password:       r.FormValue("password"),
				Role:           r.FormValue("role"),
				Specialization: r.FormValue("specialization"),
				Experience:     r.FormValue("experience"),
				ShelterName:    r.FormValue("shelterName"),
				ContactPerson:  r.FormValue("contactPerson"),
			}
			if slots := r.Form["availableTimeSlots"]; len(slots) > 0 {
				req.AvailableTimeSlots = slots
			}

			url, err := uploads.RelayFormFile(r.Context(), r, "profileImg", up)
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "image upload failed")
				return
			}
			profileImg = url
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.Fail(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:               req.Name,
			Email:              req.Email,
			ContactNumber:      req.ContactNumber,
			Address:            req.Address,
			Password:           req.Password,
			ProfileImg:         profileImg,
			Role:               req.Role,
			Specialization:     req.Specialization,
			Experience:         req.Experience,
			AvailableTimeSlots: req.AvailableTimeSlots,
			ShelterName:        req.ShelterName,
			ContactPerson:      req.ContactPerson,
		})
		switch err {
		case nil:
		case ErrMissingFields:
			httpx.Fail(w, http.StatusBadRequest, "All required fields must be filled.")
			return
		case ErrInvalidRole:
			httpx.Fail(w, http.StatusBadRequest, "Invalid role specified.")
			return
		case ErrMissingVetFields:
			httpx.Fail(w, http.StatusBadRequest, "Vet must provide specialization and experience.")
			return
		case ErrMissingShelterFields:
			httpx.Fail(w, http.StatusBadRequest, "Shelter must provide shelter name and contact person.")
			return
		case ErrEmailTaken:
			// Nota: el API histórico responde 400 acá, no 409.
			httpx.Fail(w, http.StatusBadRequest, "Email already registered.")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusCreated, "User registered successfully", u.Summary())
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func loginHandler(svc *Service, issuer auth.TokenIssuer, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "All fields are required.")
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		switch err {
		case nil:
		case ErrMissingFields:
			httpx.Fail(w, http.StatusBadRequest, "All fields are required.")
			return
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "User not registered.")
			return
		case ErrInvalidCredentials:
			httpx.Fail(w, http.StatusBadRequest, "Invalid password")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		token, err := issuer.Issue(u.ID)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.SetSessionCookie(w, middleware.SessionCookieName, token, secure)
		httpx.OK(w, http.StatusOK, "Login successful", u.Summary())
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func forgotPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, err.Error())
			return
		}

		token, err := svc.ForgotPassword(r.Context(), req.Email)
		switch err {
		case nil:
		case ErrNotFound:
			httpx.Fail(w, http.StatusNotFound, "User not found")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		// El token viaja en la respuesta: no hay delivery por mail.
		httpx.OK(w, http.StatusOK, "Password reset token generated", map[string]string{
			"resetToken": token,
		})
	}
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validation.Struct(req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, err.Error())
			return
		}

		err := svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
		switch err {
		case nil:
		case ErrInvalidResetToken:
			httpx.Fail(w, http.StatusBadRequest, "Invalid or expired token")
			return
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, "Password reset successful", nil)
	}
}

func logoutHandler(secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.ClearSessionCookie(w, middleware.SessionCookieName, secure)
		httpx.OK(w, http.StatusOK, "logout successfully.", nil)
	}
}

func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Token not found")
			return
		}

		u, err := svc.Profile(r.Context(), identity.ID)
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "User not found")
			return
		}

		httpx.OK(w, http.StatusOK, "User profile retrieved", u.Public())
	}
}

type updateProfileRequest struct {
	Name               *string   `json:"name"`
	ContactNumber      *string   `json:"contactNumber"`
	Address            *string   `json:"address"`
	Specialization     *string   `json:"specialization"`
	Experience         *string   `json:"experience"`
	AvailableTimeSlots *[]string `json:"availableTimeSlots"`
	ShelterName        *string   `json:"shelterName"`
	ContactPerson      *string   `json:"contactPerson"`
}

func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Token not found")
			return
		}

		// Allowlist por construcción: lo que no está en el struct se ignora.
		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.UpdateProfile(r.Context(), identity.ID, UpdateInput{
			Name:               req.Name,
			ContactNumber:      req.ContactNumber,
			Address:            req.Address,
			Specialization:     req.Specialization,
			Experience:         req.Experience,
			AvailableTimeSlots: req.AvailableTimeSlots,
			ShelterName:        req.ShelterName,
			ContactPerson:      req.ContactPerson,
		})
		if err != nil {
			httpx.Fail(w, http.StatusNotFound, "User not found")
			return
		}

		httpx.OK(w, http.StatusOK, "Profile updated successfully", u.Public())
	}
}

func listByRoleHandler(svc *Service, role auth.Role, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByRole(r.Context(), role)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]PublicUser, 0, len(items))
		for _, u := range items {
			out = append(out, u.Public())
		}
		httpx.OK(w, http.StatusOK, message, out)
	}
}

// Counter cuenta documentos de otra colección (pets/products) para /totalCounts.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// TotalCountsHandler arma el agregado público de contadores.
// Este endpoint responde plano, sin envelope (contrato histórico).
func TotalCountsHandler(svc *Service, products, pets Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totalProducts, err := products.Count(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		totalPets, err := pets.Count(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		counts := map[string]int64{"products": totalProducts, "pets": totalPets}
		for key, role := range map[string]auth.Role{
			"vets":     auth.RoleVet,
			"shelters": auth.RoleShelter,
			"users":    auth.RoleOwner,
		} {
			n, err := svc.CountByRole(r.Context(), role)
			if err != nil {
				httpx.Fail(w, http.StatusInternalServerError, "internal error")
				return
			}
			counts[key] = n
		}

		httpx.Raw(w, http.StatusOK, counts)
	}
}
