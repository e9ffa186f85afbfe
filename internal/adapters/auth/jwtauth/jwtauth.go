package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"

	"github.com/asif7480/FurShield-backend/internal/ports/auth"
)

var (
	ErrNoSecret     = errors.New("jwtauth: signing secret is empty")
	ErrTokenEmpty   = errors.New("jwtauth: token is empty")
	ErrTokenInvalid = errors.New("jwtauth: invalid or expired token")
)

// Validez fija de la sesión. No hay revocación server-side: logout solo
// limpia la cookie y un token robado vale hasta expirar.
const sessionTTL = 24 * time.Hour

// Manager implementa auth.TokenIssuer y auth.TokenVerifier con JWT HS256.
// El único claim propio es sub (user id): el rol se relee del store en
// cada request, así que no viaja en el token.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

func (m *Manager) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("jwtauth: user id required")
	}

	now := m.now()
	claims := jwtstd.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwtstd.Parse(token, func(t *jwtstd.Token) (any, error) {
		if _, ok := t.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	},
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithExpirationRequired(),
		jwtstd.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	return auth.Claims{UserID: strings.TrimSpace(sub)}, nil
}
