package validation

import (
	"fmt"
	"html"
	"reflect"
	"strings"

	appErrors "github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate *validator.Validate
	policy   *bluemonday.Policy
)

// messages are keyed by "<Type>.<jsonField>.<tag>".
var messages = map[string]string{
	"Category.name.required": "Tên category không được để trống",
	"Category.name.min":      "Tên category phải từ 2-255 ký tự",
	"Category.name.max":      "Tên category phải từ 2-255 ký tự",
	"Category.images.max":    "Đường dẫn ảnh không được quá 500 ký tự",
	"Category.sortOrder.gte": "Thứ tự sắp xếp không hợp lệ",
	"Category.sortOrder.lte": "Thứ tự sắp xếp không hợp lệ",

	"Product.title.required":      "Tên sản phẩm không được để trống",
	"Product.title.min":           "Tên sản phẩm phải từ 2-255 ký tự",
	"Product.title.max":           "Tên sản phẩm phải từ 2-255 ký tự",
	"Product.quantity.gte":        "Số lượng phải >= 0",
	"Product.quantity.lte":        "Số lượng quá lớn",
	"Product.discount.gte":        "Giảm giá phải từ 0-100",
	"Product.discount.lte":        "Giảm giá phải từ 0-100",
	"Product.images.max":          "Đường dẫn ảnh không được quá 500 ký tự",
	"Product.userId.required":     "Vui lòng chọn người tạo",
	"Product.categoryId.required": "Vui lòng chọn danh mục",

	"User.fullname.required": "Họ tên không được để trống",
	"User.fullname.max":      "Họ tên không được quá 255 ký tự",
	"User.email.required":    "Email không được để trống",
	"User.email.email":       "Email không hợp lệ",
	"User.email.max":         "Email không được quá 255 ký tự",
	"User.phone.max":         "Số điện thoại không được quá 20 ký tự",
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names so adapters can attach messages to their own form fields
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	policy = bluemonday.StrictPolicy()
}

// Struct validates an entity and returns the first failure as a field error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return appErrors.InternalError("Unexpected validation error").WithError(err)
	}

	fe := validationErrs[0]

	return appErrors.FieldError(fe.Field(), message(fe)).WithError(err)
}

func message(fe validator.FieldError) string {
	key := fmt.Sprintf("%s.%s", fe.Namespace(), fe.Tag())
	if msg, ok := messages[key]; ok {
		return msg
	}

	return fmt.Sprintf("Trường %s không hợp lệ", fe.Field())
}

func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Sanitize strips markup and null bytes from free text input. The policy escapes
// entities; they are decoded again because templates escape on output.
func Sanitize(input string) string {
	cleaned := strings.ReplaceAll(input, "\x00", "")

	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(cleaned)))
}

// SanitizePtr keeps nil as nil so partial updates stay partial.
func SanitizePtr(input *string) *string {
	if input == nil {
		return nil
	}

	s := Sanitize(*input)

	return &s
}
