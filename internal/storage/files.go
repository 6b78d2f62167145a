package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore saves uploaded files under a local directory that is served
// statically at /uploads. Stored names are random so uploads cannot collide
// or traverse paths.
type DiskStore struct {
	Dir     string
	BaseURL string // public base, e.g. http://localhost:5000
}

// StoredFile describes one accepted upload.
type StoredFile struct {
	Path string // on-disk path, for Remove
	URL  string // public URL persisted on the owning record
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the uploaded file to disk under a random name, keeping the
// original extension.
func (s *DiskStore) Save(file multipart.File, header *multipart.FileHeader) (*StoredFile, error) {
	name := uuid.New().String() + filepath.Ext(header.Filename)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		Path: path,
		URL:  s.BaseURL + "/uploads/" + name,
	}, nil
}

// Remove deletes a stored file. Used as the compensating action when the
// record mutation after an accepted upload fails.
func (s *DiskStore) Remove(f *StoredFile) error {
	if f == nil {
		return nil
	}
	return os.Remove(f.Path)
}
