package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/shopspring/decimal"
)

const defaultMultipartMemory = 10 << 20

// Form is a uniform view over JSON, urlencoded and multipart request bodies.
// Typed accessors return nil for absent keys and record the first conversion
// failure, which Err reports.
type Form struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
	// lists holds the keys that arrived as JSON arrays
	lists  map[string]bool
	err    error
}

func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}

	return &Form{values: values, files: map[string][]*multipart.FileHeader{}, lists: map[string]bool{}}
}

// ParseForm decodes the body according to its Content-Type. An empty body
// yields an empty form.
func ParseForm(r *http.Request, maxMemory int64) (*Form, error) {
	if maxMemory <= 0 {
		maxMemory = defaultMultipartMemory
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return parseJSONForm(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, appErrors.BadRequestError("Dữ liệu multipart không hợp lệ").WithError(err)
		}

		form := NewForm(r.MultipartForm.Value)
		form.files = r.MultipartForm.File

		return form, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, appErrors.BadRequestError("Dữ liệu form không hợp lệ").WithError(err)
		}

		return NewForm(r.PostForm), nil
	}
}

func parseJSONForm(r *http.Request) (*Form, error) {
	form := NewForm(nil)

	if r.Body == nil || r.Body == http.NoBody {
		return form, nil
	}

	var raw map[string]any

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return form, nil
		}

		return nil, appErrors.BadRequestError("JSON không hợp lệ").WithError(err)
	}

	for key, v := range raw {
		switch val := v.(type) {
		case nil:
			// null counts as absent
		case []any:
			list := make([]string, 0, len(val))
			for _, item := range val {
				s, ok := jsonScalar(item)
				if !ok {
					return nil, invalidValue(key)
				}

				list = append(list, s)
			}

			form.values[key] = list
			form.lists[key] = true
		default:
			s, ok := jsonScalar(val)
			if !ok {
				return nil, invalidValue(key)
			}

			form.values[key] = []string{s}
		}
	}

	return form, nil
}

// jsonScalar renders a decoded JSON string, number or boolean. Objects,
// arrays and null are not scalars.
func jsonScalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func invalidValue(key string) *appErrors.AppError {
	return appErrors.FieldError(key, fmt.Sprintf("Trường %s không hợp lệ", key))
}

func (f *Form) Err() error {
	return f.err
}

func (f *Form) fail(key, message string, err error) {
	if f.err == nil {
		f.err = appErrors.FieldError(key, message).WithError(err)
	}
}

func (f *Form) Has(key string) bool {
	_, ok := f.values[key]

	return ok
}

func (f *Form) String(key string) *string {
	list, ok := f.values[key]
	if !ok || len(list) == 0 {
		return nil
	}

	if f.lists[key] {
		f.fail(key, fmt.Sprintf("Trường %s không hợp lệ", key), fmt.Errorf("array given for scalar field %q", key))
		return nil
	}

	s := list[0]

	return &s
}

// nonBlank treats an empty form field the same as a missing one.
func (f *Form) nonBlank(key string) (string, bool) {
	s := f.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}

	return strings.TrimSpace(*s), true
}

func (f *Form) Int(key string) *int {
	raw, ok := f.nonBlank(key)
	if !ok {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		f.fail(key, fmt.Sprintf("Trường %s phải là số nguyên", key), err)
		return nil
	}

	return &v
}

func (f *Form) Int64(key string) *int64 {
	raw, ok := f.nonBlank(key)
	if !ok {
		return nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.fail(key, fmt.Sprintf("Trường %s phải là số nguyên", key), err)
		return nil
	}

	return &v
}

func (f *Form) Decimal(key string) *decimal.Decimal {
	raw, ok := f.nonBlank(key)
	if !ok {
		return nil
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		f.fail(key, fmt.Sprintf("Trường %s phải là số", key), err)
		return nil
	}

	return &v
}

// Bool accepts the values an HTML checkbox or a JSON boolean produce.
func (f *Form) Bool(key string) *bool {
	raw, ok := f.nonBlank(key)
	if !ok {
		return nil
	}

	switch strings.ToLower(raw) {
	case "true", "on", "1", "yes":
		v := true
		return &v
	case "false", "off", "0", "no":
		v := false
		return &v
	}

	f.fail(key, fmt.Sprintf("Trường %s không hợp lệ", key), fmt.Errorf("invalid boolean %q", raw))

	return nil
}

// Int64List reads repeated keys or a JSON array. Values may also be comma
// separated. An empty list is returned when the key is present but empty.
func (f *Form) Int64List(key string) *[]int64 {
	list, ok := f.values[key]
	if !ok {
		return nil
	}

	ids := []int64{}

	for _, item := range list {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				f.fail(key, fmt.Sprintf("Trường %s phải là danh sách số nguyên", key), err)
				return nil
			}

			ids = append(ids, v)
		}
	}

	return &ids
}

// File returns the first non-empty upload for key.
func (f *Form) File(key string) *multipart.FileHeader {
	for _, fh := range f.files[key] {
		if fh != nil && fh.Size > 0 && fh.Filename != "" {
			return fh
		}
	}

	return nil
}
