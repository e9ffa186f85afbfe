package assets

import "context"

// Uploader sube un archivo local al asset host y devuelve su URL pública.
// El caller es dueño del archivo temporal y lo borra en ambos caminos.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
