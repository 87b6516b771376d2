package models

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Images    string `json:"images,omitempty" validate:"max=500"`
	SortOrder int    `json:"sortOrder" validate:"gte=-2147483648,lte=2147483647"`
}

// CategoryInput carries a create or partial update; nil fields are left untouched.
type CategoryInput struct {
	Name      *string `json:"name"`
	Images    *string `json:"images"`
	SortOrder *int    `json:"sortOrder"`
}
