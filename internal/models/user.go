package models

type User struct {
	ID         int64      `json:"id"`
	Fullname   string     `json:"fullname" validate:"required,max=255"`
	Email      string     `json:"email" validate:"required,max=255,email"`
	Password   string     `json:"-"`
	Phone      string     `json:"phone,omitempty" validate:"max=20"`
	Categories []Category `json:"categories"`
}

// CategoryIDs is nil-safe and keeps the association order.
func (u *User) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(u.Categories))
	for _, c := range u.Categories {
		ids = append(ids, c.ID)
	}

	return ids
}

func (u *User) HasCategory(id int64) bool {
	for _, c := range u.Categories {
		if c.ID == id {
			return true
		}
	}

	return false
}

// UserInput carries a create or partial update. A non-nil CategoryIDs replaces the
// whole association list, an empty one clears it.
type UserInput struct {
	Fullname    *string  `json:"fullname"`
	Email       *string  `json:"email"`
	Password    *string  `json:"password"`
	Phone       *string  `json:"phone"`
	CategoryIDs *[]int64 `json:"categoryIds"`
}
