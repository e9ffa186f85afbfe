package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
// Todo viene de env vars (no hay archivo de config en este deploy).
type Config struct {
	Port string

	MongoURI string

	// Secreto para firmar los tokens de sesión (JWT HS256).
	SecretKey string

	// Cloudinary (asset host). Si falta, el servicio arranca sin uploads.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Orígenes permitidos para CORS, separados por coma.
	AllowedOrigins []string

	// Env: "production" activa Secure en la cookie de sesión.
	Env string

	LogLevel  string
	LogFormat string
	AppName   string
}

var (
	ErrMissingMongoURI  = errors.New("config: MONGO_URI is required")
	ErrMissingSecretKey = errors.New("config: SECRET_KEY is required")
)

// Load lee la configuración desde env vars vía viper.
// MONGO_URI y SECRET_KEY son obligatorios; el resto tiene defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "furshield-backend")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")

	cfg := Config{
		Port:                strings.TrimSpace(v.GetString("PORT")),
		MongoURI:            strings.TrimSpace(v.GetString("MONGO_URI")),
		SecretKey:           strings.TrimSpace(v.GetString("SECRET_KEY")),
		CloudinaryCloudName: strings.TrimSpace(v.GetString("CLOUDINARY_CLOUD_NAME")),
		CloudinaryAPIKey:    strings.TrimSpace(v.GetString("CLOUDINARY_API_KEY")),
		CloudinaryAPISecret: strings.TrimSpace(v.GetString("CLOUDINARY_API_SECRET")),
		Env:                 strings.TrimSpace(v.GetString("NODE_ENV")),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		AppName:             v.GetString("APP_NAME"),
	}

	for _, o := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.MongoURI == "" {
		return Config{}, ErrMissingMongoURI
	}
	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecretKey
	}

	return cfg, nil
}

// IsProduction indica si corremos en producción (afecta cookie Secure).
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// HasCloudinary indica si el asset host está configurado.
func (c Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
