package storage

import (
	"io"
	"mime/multipart"

	"github.com/spf13/afero"
)

// Name prefixes of stored images, one per owning entity.
const (
	CategoryPrefix = "category_"
	ProductPrefix  = "product_"
)

// Storage keeps uploaded images under collision-safe names.
type Storage interface {
	Init() error
	Store(file *multipart.FileHeader, prefix string) (string, error)
	StoreReader(originalName string, r io.Reader, prefix string) (string, error)
	Load(filename string) string
	Delete(filename string) error
	Exists(filename string) bool
	Open(filename string) (afero.File, error)
	ContentType(filename string) (string, error)
	URL(filename string) string
	DeleteByURL(url string) error
}
