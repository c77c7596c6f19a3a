package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where the upload directory is served from.
const URLPrefix = "/static/uploads/"

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to a plain ASCII file name with no path parts.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	return name
}

// Save writes the uploaded file under a collision-free name and returns it.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	clean := SecureFilename(fh.Filename)
	if clean == "" {
		clean = "photo"
	}
	name := uuid.NewString()[:8] + "_" + clean

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("uploads: open: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("uploads: create: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("uploads: write: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("uploads: close: %w", err)
	}
	return name, nil
}

func URL(name string) string {
	return URLPrefix + name
}
