// Package storage guarda las imágenes de soportes en disco local.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LocalStore implementa usecase.ImageStore sobre un directorio servido como estático.
type LocalStore struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, prefix: "/" + strings.Trim(publicPrefix, "/"), now: time.Now}, nil
}

// Dir directorio raíz de las imágenes.
func (s *LocalStore) Dir() string { return s.dir }

// Save escribe la imagen como support_<unixms>_<uuid8>_<nombre saneado> y devuelve su URL pública.
func (s *LocalStore) Save(ctx context.Context, filename, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("support_%d_%s_%s", s.now().UnixMilli(), uuid.NewString()[:8], Sanitize(filename))
	dst := filepath.Join(s.dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	return path.Join(s.prefix, name), nil
}

// Sanitize deja solo letras, dígitos, punto, guion y guion bajo del nombre base.
func Sanitize(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	clean := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if clean == "" {
		return "image"
	}
	return clean
}
