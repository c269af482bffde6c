package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/conectahub/backend/pkg/logger"
	"github.com/conectahub/backend/pkg/response"
	"github.com/google/uuid"
)

const MaxFilesPerRequest = 10

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store persists uploaded media and returns the path the API stores and serves.
type Store interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
	Remove(path string) error
}

// LocalStore writes uploads under a directory on local disk.
type LocalStore struct {
	dir      string
	public   string
	maxBytes int64
}

// NewLocalStore creates the upload directory if needed. public is the URL
// prefix the directory is served under (e.g. "/uploads").
func NewLocalStore(dir, public string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:      dir,
		public:   strings.Trim(public, "/"),
		maxBytes: maxBytes,
	}, nil
}

// Save validates and writes one file, returning "<public>/<subdir>/<uuid><ext>".
func (s *LocalStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > s.maxBytes {
		return "", response.NewBadRequest(fmt.Sprintf("file %s exceeds the %d MB limit", file.Filename, s.maxBytes>>20))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", response.NewBadRequest(fmt.Sprintf("file %s has an unsupported format", file.Filename))
	}

	targetDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(targetDir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path.Join(s.public, subdir, name), nil
}

// Remove deletes a file previously returned by Save. A file that is already
// gone is not an error.
func (s *LocalStore) Remove(p string) error {
	rel := strings.TrimPrefix(strings.TrimPrefix(p, "/"), s.public+"/")
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("refusing to remove %q outside the upload dir", p)
	}
	if err := os.Remove(filepath.Join(s.dir, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// SaveAll stores every file in order. On the first failure the files already
// written are removed and nothing is returned.
func SaveAll(store Store, files []*multipart.FileHeader, subdir string) ([]string, error) {
	if len(files) > MaxFilesPerRequest {
		return nil, response.NewBadRequest(fmt.Sprintf("at most %d files per request", MaxFilesPerRequest))
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := store.Save(f, subdir)
		if err != nil {
			Discard(store, paths...)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Discard removes uploads whose database write did not happen. Failures are
// only logged; the caller is already returning an error.
func Discard(store Store, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := store.Remove(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("[Storage] failed to remove orphaned upload")
		}
	}
}
