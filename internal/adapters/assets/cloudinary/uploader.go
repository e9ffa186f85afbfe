package cloudinary

import (
	"context"
	"errors"
	"strings"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrNotConfigured = errors.New("cloudinary: missing cloud name / api key / api secret")
	ErrEmptyPath     = errors.New("cloudinary: empty local path")
	ErrUploadFailed  = errors.New("cloudinary: upload failed")
)

const uploadTimeout = 30 * time.Second

// Config del asset host. Los tres campos vienen de env
// (CLOUDINARY_CLOUD_NAME / CLOUDINARY_API_KEY / CLOUDINARY_API_SECRET).
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Uploader implementa assets.Uploader contra Cloudinary.
// Sin retries: si el upload falla, el request falla (el caller decide el status).
type Uploader struct {
	client *cld.Cloudinary
}

func NewUploader(cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.CloudName) == "" ||
		strings.TrimSpace(cfg.APIKey) == "" ||
		strings.TrimSpace(cfg.APISecret) == "" {
		return nil, ErrNotConfigured
	}

	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}

	return &Uploader{client: client}, nil
}

// Upload sube el archivo local y devuelve su URL pública.
// No borra el archivo: eso es del caller (que lo remueve en ambos caminos).
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	localPath = strings.TrimSpace(localPath)
	if localPath == "" {
		return "", ErrEmptyPath
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	res, err := u.client.Upload.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if res == nil || strings.TrimSpace(res.SecureURL) == "" {
		return "", ErrUploadFailed
	}

	return res.SecureURL, nil
}
