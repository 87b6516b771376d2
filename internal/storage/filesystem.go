package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	sniffLen = 3072
)

var imageExtensions = map[string][]string{
	"image/png":  {".png"},
	"image/jpeg": {".jpg", ".jpeg"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
	"image/bmp":  {".bmp"},
}

var _ Storage = (*FileSystemStorage)(nil)

type FileSystemStorage struct {
	fs        afero.Fs
	root      string
	urlPrefix string
}

// NewFileSystemStorage stores files under root on fs. Stored names are published
// as urlPrefix + filename.
func NewFileSystemStorage(fs afero.Fs, root, urlPrefix string) *FileSystemStorage {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}

	return &FileSystemStorage{fs: fs, root: root, urlPrefix: urlPrefix}
}

func (s *FileSystemStorage) Init() error {
	if err := s.fs.MkdirAll(s.root, dirPerm); err != nil {
		return fmt.Errorf("could not initialize storage at %s: %w", s.root, err)
	}

	return nil
}

func (s *FileSystemStorage) Store(file *multipart.FileHeader, prefix string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", appErrors.InvalidUploadError("Failed to store empty file")
	}

	src, err := file.Open()
	if err != nil {
		return "", appErrors.StorageError("Failed to read uploaded file").WithError(err)
	}
	defer src.Close()

	return s.StoreReader(file.Filename, src, prefix)
}

// StoreReader writes r under prefix + uuid + the original extension and returns
// the new name. Only images whose sniffed type agrees with the extension are
// accepted; a missing extension takes the sniffed one.
func (s *FileSystemStorage) StoreReader(originalName string, r io.Reader, prefix string) (string, error) {
	if strings.TrimSpace(originalName) == "" {
		return "", appErrors.InvalidUploadError("Invalid filename")
	}

	if strings.Contains(originalName, "..") {
		return "", appErrors.InvalidUploadError("Cannot store file with relative path outside current directory")
	}

	head := make([]byte, sniffLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", appErrors.StorageError("Failed to read uploaded file").WithError(err)
	}

	if n == 0 {
		return "", appErrors.InvalidUploadError("Failed to store empty file")
	}

	head = head[:n]

	cleaned := path.Clean(strings.ReplaceAll(originalName, "\\", "/"))

	ext, err := imageExtension(path.Ext(path.Base(cleaned)), head)
	if err != nil {
		return "", err
	}

	filename := prefix + uuid.NewString() + ext

	dst, err := s.fs.OpenFile(s.Load(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", appErrors.StorageError("Failed to store file").WithError(err)
	}

	_, copyErr := io.Copy(dst, io.MultiReader(bytes.NewReader(head), r))
	closeErr := dst.Close()

	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = s.fs.Remove(s.Load(filename))
		return "", appErrors.StorageError("Failed to store file").WithError(err)
	}

	return filename, nil
}

// imageExtension rejects anything but the allowed image types and returns the
// extension the stored name gets.
func imageExtension(originalExt string, head []byte) (string, error) {
	mtype := mimetype.Detect(head)

	allowed, ok := imageExtensions[mtype.String()]
	if !ok {
		return "", appErrors.InvalidUploadError("Only JPEG, PNG, GIF, WEBP or BMP images can be stored")
	}

	if originalExt == "" {
		return mtype.Extension(), nil
	}

	if !slices.Contains(allowed, strings.ToLower(originalExt)) {
		return "", appErrors.InvalidUploadError("File extension " + originalExt + " does not match " + mtype.String())
	}

	return originalExt, nil
}

// IsImage reports whether contentType is one of the types StoreReader accepts.
func IsImage(contentType string) bool {
	_, ok := imageExtensions[contentType]

	return ok
}

// Load resolves filename under the root without validating it.
func (s *FileSystemStorage) Load(filename string) string {
	return filepath.Join(s.root, filename)
}

// Delete is a no-op for files that do not exist.
func (s *FileSystemStorage) Delete(filename string) error {
	err := s.fs.Remove(s.Load(filename))
	if err != nil && !os.IsNotExist(err) {
		return appErrors.StorageError("Failed to delete file").WithError(err)
	}

	return nil
}

func (s *FileSystemStorage) Exists(filename string) bool {
	ok, err := afero.Exists(s.fs, s.Load(filename))

	return err == nil && ok
}

func (s *FileSystemStorage) Open(filename string) (afero.File, error) {
	return s.fs.Open(s.Load(filename))
}

// ContentType sniffs the stored bytes rather than trusting the extension.
func (s *FileSystemStorage) ContentType(filename string) (string, error) {
	f, err := s.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detecting content type of %s: %w", filename, err)
	}

	return mtype.String(), nil
}

func (s *FileSystemStorage) URL(filename string) string {
	return s.urlPrefix + filename
}

// DeleteByURL removes the file behind a URL produced by URL. Other URLs, such as
// externally hosted images, are left alone.
func (s *FileSystemStorage) DeleteByURL(url string) error {
	filename, ok := strings.CutPrefix(url, s.urlPrefix)
	if !ok || !ValidName(filename) {
		return nil
	}

	return s.Delete(filename)
}

// ValidName reports whether filename names a file directly under the root.
func ValidName(filename string) bool {
	return filename != "" &&
		!strings.Contains(filename, "..") &&
		!strings.ContainsAny(filename, `/\`)
}
