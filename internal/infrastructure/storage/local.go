// Package storage guarda los archivos subidos en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/vendor-management/internal/domain"
)

// LocalStorage escribe bajo un directorio raíz. Las rutas devueltas son relativas a la raíz
// y usan "/" como separador, igual que el campo file_path de la DB.
type LocalStorage struct {
	root     string
	maxBytes int64
}

// NewLocalStorage crea el directorio raíz si no existe. maxBytes <= 0 desactiva el límite.
func NewLocalStorage(root string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &LocalStorage{root: root, maxBytes: maxBytes}, nil
}

// Save copia r a dir/<uuid>_<nombre>. Un nombre repetido nunca pisa un archivo existente.
func (s *LocalStorage) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := sanitize(filename)
	if name == "" {
		return "", fmt.Errorf("storage: nombre de archivo vacío")
	}
	rel := path.Join(sanitize(dir), uuid.New().String()[:8]+"_"+name)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear %s: %w", rel, err)
	}
	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: escribir %s: %w", rel, copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: cerrar %s: %w", rel, closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: %s: %w", filename, domain.ErrFileTooLarge)
	}
	return rel, nil
}

// Remove borra el archivo. Borrar algo que ya no existe no es error.
func (s *LocalStorage) Remove(_ context.Context, rel string) error {
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("storage: ruta inválida %q", rel)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", rel, err)
	}
	return nil
}

// Path ruta absoluta de un archivo guardado (para servirlo).
func (s *LocalStorage) Path(rel string) (string, error) {
	if rel == "" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("storage: ruta inválida %q", rel)
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// sanitize deja solo el último segmento y reemplaza caracteres problemáticos.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 32, strings.ContainsRune(`<>:"|?*`, r):
			return -1
		}
		return r
	}, name)
}
