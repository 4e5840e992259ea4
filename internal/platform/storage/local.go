package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ImageStore persists profile images and returns the reference string kept on
// the user record.
type ImageStore interface {
	Save(userID, filename string, src io.Reader) (string, error)
}

// AllowedExtension reports whether the filename carries an accepted image
// extension (png, jpg, jpeg, gif).
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename strips any path components and unsafe characters so the
// uploaded name is safe to embed in a stored filename.
func SanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return -1
	}, name)
	return name
}

type localImageStore struct {
	dir string
	now func() time.Time
}

func NewLocalImageStore(dir string) ImageStore {
	return &localImageStore{dir: dir, now: time.Now}
}

// Save writes the image under a name unique per user and timestamp and
// returns that name.
func (s *localImageStore) Save(userID, filename string, src io.Reader) (string, error) {
	if !AllowedExtension(filename) {
		return "", fmt.Errorf("storage: extension not allowed for %q", filename)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create upload dir: %w", err)
	}

	stored := fmt.Sprintf("%s_%s_%s", userID, s.now().UTC().Format("20060102150405"), SanitizeFilename(filename))
	path := filepath.Join(s.dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return stored, nil
}
