package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidRole          = errors.New("invalid role")
	ErrMissingVetFields     = errors.New("vet requires specialization and experience")
	ErrMissingShelterFields = errors.New("shelter requires shelter name and contact person")
	ErrEmailTaken           = errors.New("email already registered")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)

// Mismo costo que usaba el backend anterior.
const bcryptCost = 10

const resetTokenTTL = 15 * time.Minute

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name          string
	Email         string
	ContactNumber string
	Address       string
	Password      string
	ProfileImg    string
	Role          string

	// Vet
	Specialization     string
	Experience         string
	AvailableTimeSlots []string

	// Shelter
	ShelterName   string
	ContactPerson string
}

// Register crea la cuenta. Para shelters el display name es el shelterName.
// El password se guarda hasheado; jamás el plaintext.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	role := auth.Role(strings.TrimSpace(in.Role))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	name := strings.TrimSpace(in.Name)
	if role == auth.RoleShelter {
		name = strings.TrimSpace(in.ShelterName)
	}

	if name == "" || strings.TrimSpace(in.ContactNumber) == "" || email == "" ||
		strings.TrimSpace(in.Address) == "" || in.Password == "" || role == "" {
		return User{}, ErrMissingFields
	}
	if !auth.ValidRole(role) {
		return User{}, ErrInvalidRole
	}

	if role == auth.RoleVet &&
		(strings.TrimSpace(in.Specialization) == "" || strings.TrimSpace(in.Experience) == "") {
		return User{}, ErrMissingVetFields
	}
	if role == auth.RoleShelter &&
		(strings.TrimSpace(in.ShelterName) == "" || strings.TrimSpace(in.ContactPerson) == "") {
		return User{}, ErrMissingShelterFields
	}

	// Pre-chequeo de email; el repo igual garantiza unicidad al crear.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Address:       strings.TrimSpace(in.Address),
		PasswordHash:  string(hash),
		ProfileImg:    strings.TrimSpace(in.ProfileImg),
		Role:          role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch role {
	case auth.RoleVet:
		slots := in.AvailableTimeSlots
		if slots == nil {
			slots = []string{}
		}
		u.Vet = &VetProfile{
			Specialization:     strings.TrimSpace(in.Specialization),
			Experience:         strings.TrimSpace(in.Experience),
			AvailableTimeSlots: slots,
		}
	case auth.RoleShelter:
		u.Shelter = &ShelterProfile{
			ShelterName:   strings.TrimSpace(in.ShelterName),
			ContactPerson: strings.TrimSpace(in.ContactPerson),
		}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// Login valida email + password contra el hash.
// Email desconocido => ErrNotFound; password incorrecto => ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ForgotPassword genera un token de reset de un solo uso (15 min) y lo devuelve
// en crudo; no hay delivery por mail.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrNotFound
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	expiry := s.now().Add(resetTokenTTL)
	u.ResetToken = token
	u.ResetTokenExpiry = &expiry
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consume el token si no expiró; pisa el hash y limpia el token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" || password == "" {
		return ErrInvalidResetToken
	}

	u, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if u.ResetTokenExpiry == nil || !u.ResetTokenExpiry.After(s.now()) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	u.UpdatedAt = s.now()

	return s.repo.Update(ctx, u)
}

func (s *Service) Profile(ctx context.Context, userID string) (User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// UpdateInput es un patch con allowlist: punteros nil = no tocar.
// Campos fuera del allowlist se ignoran en silencio (el handler nunca los mapea).
type UpdateInput struct {
	Name          *string
	ContactNumber *string
	Address       *string

	Specialization     *string
	Experience         *string
	AvailableTimeSlots *[]string

	ShelterName   *string
	ContactPerson *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, ErrNotFound
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactNumber != nil {
		u.ContactNumber = strings.TrimSpace(*in.ContactNumber)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}

	// Los campos de rol solo aplican si la cuenta tiene ese payload.
	if u.Role == auth.RoleVet {
		if u.Vet == nil {
			u.Vet = &VetProfile{AvailableTimeSlots: []string{}}
		}
		if in.Specialization != nil {
			u.Vet.Specialization = strings.TrimSpace(*in.Specialization)
		}
		if in.Experience != nil {
			u.Vet.Experience = strings.TrimSpace(*in.Experience)
		}
		if in.AvailableTimeSlots != nil {
			u.Vet.AvailableTimeSlots = *in.AvailableTimeSlots
		}
	}
	if u.Role == auth.RoleShelter {
		if u.Shelter == nil {
			u.Shelter = &ShelterProfile{}
		}
		if in.ShelterName != nil && strings.TrimSpace(*in.ShelterName) != "" {
			u.Shelter.ShelterName = strings.TrimSpace(*in.ShelterName)
			u.Name = u.Shelter.ShelterName
		}
		if in.ContactPerson != nil {
			u.Shelter.ContactPerson = strings.TrimSpace(*in.ContactPerson)
		}
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) ListByRole(ctx context.Context, role auth.Role) ([]User, error) {
	return s.repo.ListByRole(ctx, role)
}

func (s *Service) CountByRole(ctx context.Context, role auth.Role) (int64, error) {
	return s.repo.CountByRole(ctx, role)
}

// FindIdentity implementa auth.IdentityStore para el middleware de autenticación.
func (s *Service) FindIdentity(ctx context.Context, userID string) (auth.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return auth.Identity{}, ErrNotFound
	}
	return u.Identity(), nil
}
