// Package storage persists uploaded files on local disk. Stored names are
// random hex keys plus the original extension, so concurrent uploads can
// never collide on a wall-clock timestamp.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUploadRejected marks constraint violations (type or size).
// Handlers map it to a 400.
var ErrUploadRejected = errors.New("upload rejected")

// Constraint is the allowlist applied to an upload before anything
// touches the disk or the database.
type Constraint struct {
	MaxSize      int64
	Extensions   []string
	ContentTypes []string
}

var (
	// Book cover images.
	ImageConstraint = Constraint{
		MaxSize:      5 << 20,
		Extensions:   []string{".jpg", ".jpeg", ".png"},
		ContentTypes: []string{"image/jpeg", "image/png"},
	}
	// Lecture notes.
	NoteConstraint = Constraint{
		MaxSize:      10 << 20,
		Extensions:   []string{".pdf"},
		ContentTypes: []string{"application/pdf"},
	}
	// Question papers.
	PaperConstraint = Constraint{
		MaxSize:      20 << 20,
		Extensions:   []string{".pdf"},
		ContentTypes: []string{"application/pdf"},
	}
)

// FileStore saves uploads under a base directory, one subdirectory per
// resource type, and maps stored files to /uploads/ URLs.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(baseDir string) (*FileStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("storage base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save validates the upload against c and writes it under subdir.
// It returns the public /uploads/ URL of the stored file. Nothing is
// written if validation fails, and a half-written file is removed.
func (s *FileStore) Save(subdir string, fh *multipart.FileHeader, c Constraint) (string, error) {
	if err := c.check(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := newStorageKey() + strings.ToLower(filepath.Ext(fh.Filename))
	target := filepath.Join(dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close file: %w", err)
	}

	return "/uploads/" + path.Join(subdir, name), nil
}

// Resolve maps a stored /uploads/ URL back to the path on disk.
func (s *FileStore) Resolve(fileURL string) (string, error) {
	rel, ok := strings.CutPrefix(fileURL, "/uploads/")
	if !ok || rel == "" {
		return "", fmt.Errorf("not a stored file url: %q", fileURL)
	}
	rel = path.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("not a stored file url: %q", fileURL)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(rel)), nil
}

// Remove deletes the stored file behind a /uploads/ URL.
// A file already gone is not an error.
func (s *FileStore) Remove(fileURL string) error {
	p, err := s.Resolve(fileURL)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c Constraint) check(fh *multipart.FileHeader) error {
	if fh.Size > c.MaxSize {
		return fmt.Errorf("%w: file exceeds %d MB limit", ErrUploadRejected, c.MaxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !contains(c.Extensions, ext) {
		return fmt.Errorf("%w: extension %q is not allowed (allowed: %s)",
			ErrUploadRejected, ext, strings.Join(c.Extensions, ", "))
	}

	ct := fh.Header.Get("Content-Type")
	if ct != "" && !contains(c.ContentTypes, strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))) {
		return fmt.Errorf("%w: content type %q is not allowed", ErrUploadRejected, ct)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// newStorageKey returns a random hex string used as the stored filename.
func newStorageKey() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "key-unknown"
	}
	return hex.EncodeToString(b[:])
}
