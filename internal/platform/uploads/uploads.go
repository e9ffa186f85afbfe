package uploads

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/asif7480/FurShield-backend/internal/ports/assets"
)

// MaxMemory para ParseMultipartForm; lo demás se spoolea a disco.
const MaxMemory = 32 << 20

// ErrTooManyFiles: el form trae más archivos que el máximo de la ruta.
var ErrTooManyFiles = errors.New("too many files")

// IsMultipart dice si el request trae form multipart (rutas con imagen).
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// RelayFormFile copia el archivo del form a un temporal, lo sube al asset
// host y devuelve la URL. El temporal se borra en ambos caminos (éxito y error)
// para no dejar archivos huérfanos.
// Sin archivo en el form, o sin uploader configurado (dev), devuelve "".
func RelayFormFile(ctx context.Context, r *http.Request, field string, up assets.Uploader) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return relay(ctx, file, header, up)
}

// RelayFormFiles sube hasta max archivos del mismo field y devuelve sus URLs.
// Más de max archivos => ErrTooManyFiles; nada de truncar en silencio.
func RelayFormFiles(ctx context.Context, r *http.Request, field string, max int, up assets.Uploader) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if max > 0 && len(headers) > max {
		return nil, ErrTooManyFiles
	}

	urls := make([]string, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, err
		}

		url, err := relay(ctx, f, h, up)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		if url != "" {
			urls = append(urls, url)
		}
	}

	return urls, nil
}

func relay(ctx context.Context, file multipart.File, header *multipart.FileHeader, up assets.Uploader) (string, error) {
	if up == nil {
		// Modo dev: sin asset host, el recurso queda sin imagen.
		return "", nil
	}

	tmp, err := os.CreateTemp("", "furshield-upload-*"+safeExt(header.Filename))
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return up.Upload(ctx, tmpPath)
}

func safeExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	ext := name[i:]
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
