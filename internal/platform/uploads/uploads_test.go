package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// imageForm arma un request multipart ya parseado con n archivos en "images".
func imageForm(t *testing.T, n int) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < n; i++ {
		fw, err := w.CreateFormFile("images", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("jpegdata")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if n == 0 {
		if err := w.WriteField("name", "Rocky"); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	if err := r.ParseMultipartForm(MaxMemory); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return r
}

func TestRelayFormFiles_RejectsOverMax(t *testing.T) {
	r := imageForm(t, 4)

	// 4 archivos contra un máximo de 3: nada de truncar, se rechaza.
	if _, err := RelayFormFiles(context.Background(), r, "images", 3, nil); err != ErrTooManyFiles {
		t.Fatalf("expected ErrTooManyFiles, got %v", err)
	}
}

func TestRelayFormFiles_WithinMax(t *testing.T) {
	r := imageForm(t, 2)

	// Sin uploader configurado (dev) no hay URLs, pero tampoco error.
	urls, err := RelayFormFiles(context.Background(), r, "images", 3, nil)
	if err != nil {
		t.Fatalf("relay within max: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no urls without uploader, got %v", urls)
	}
}

func TestRelayFormFiles_NoFiles(t *testing.T) {
	r := imageForm(t, 0)

	urls, err := RelayFormFiles(context.Background(), r, "images", 3, nil)
	if err != nil || urls != nil {
		t.Fatalf("expected nil/nil for form without files, got %v/%v", urls, err)
	}
}
