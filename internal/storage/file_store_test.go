package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestSave_StoresUnderRandomKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	fh := makeFileHeader(t, "cover.jpg", "image/jpeg", []byte("jpegdata"))

	url1, err := store.Save("books", fh, ImageConstraint)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url1, "/uploads/books/"))
	require.True(t, strings.HasSuffix(url1, ".jpg"))
	require.NotContains(t, url1, "cover")

	onDisk, err := store.Resolve(url1)
	require.NoError(t, err)
	require.FileExists(t, onDisk)

	url2, err := store.Save("books", fh, ImageConstraint)
	require.NoError(t, err)
	require.NotEqual(t, url1, url2)
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	tiny := Constraint{
		MaxSize:      8,
		Extensions:   []string{".pdf"},
		ContentTypes: []string{"application/pdf"},
	}
	fh := makeFileHeader(t, "notes.pdf", "application/pdf", []byte("more than eight bytes"))

	_, err = store.Save("notes", fh, tiny)
	require.ErrorIs(t, err, ErrUploadRejected)
}

func TestSave_RejectsWrongExtension(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	fh := makeFileHeader(t, "notes.docx", "application/pdf", []byte("%PDF-1.4"))

	_, err = store.Save("notes", fh, NoteConstraint)
	require.ErrorIs(t, err, ErrUploadRejected)
}

func TestSave_RejectsWrongContentType(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	fh := makeFileHeader(t, "notes.pdf", "application/zip", []byte("PK"))

	_, err = store.Save("notes", fh, NoteConstraint)
	require.ErrorIs(t, err, ErrUploadRejected)
}

func TestResolve_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, url := range []string{
		"/uploads/../etc/passwd",
		"/uploads/",
		"/elsewhere/x.pdf",
		"notes/x.pdf",
	} {
		_, err := store.Resolve(url)
		require.Error(t, err, "url %q should be rejected", url)
	}
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Remove("/uploads/books/nothere.jpg"))
}
