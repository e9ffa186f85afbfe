package httpx

import "net/http"

// Sesión = cookie "token", HTTP-only, SameSite strict, 24h.
// Secure depende del entorno (en local el frontend corre sobre http).
const sessionMaxAge = 60 * 60 * 24

// SetSessionCookie guarda el token de sesión en la cookie.
func SetSessionCookie(w http.ResponseWriter, name, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		MaxAge:   sessionMaxAge,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie borra la cookie de sesión. No hay invalidación
// server-side: el token sigue siendo válido hasta su expiración natural.
func ClearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
