package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices go out as JSON numbers, the way the page scripts and GraphQL clients read them
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title" validate:"required,min=2,max=255"`
	Quantity     int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Discount     int             `json:"discount" validate:"gte=0,lte=100"`
	Status       bool            `json:"status"`
	Images       string          `json:"images,omitempty" validate:"max=500"`
	CreateDate   time.Time       `json:"createDate"`
	UserID       int64           `json:"userId" validate:"required"`
	UserName     string          `json:"userName,omitempty"`
	CategoryID   *int64          `json:"categoryId" validate:"required"`
	CategoryName string          `json:"categoryName,omitempty"`
}

// DiscountedPrice is the unit price after the percentage discount.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price
	}

	factor := decimal.NewFromInt(int64(100 - p.Discount)).Div(decimal.NewFromInt(100))

	return p.Price.Mul(factor).Round(2)
}

type ProductInput struct {
	Title       *string          `json:"title"`
	Quantity    *int             `json:"quantity"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Discount    *int             `json:"discount"`
	Status      *bool            `json:"status"`
	Images      *string          `json:"images"`
	UserID      *int64           `json:"userId"`
	CategoryID  *int64           `json:"categoryId"`
}

// ProductStats feeds the admin dashboard.
type ProductStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	OutOfStock int64 `json:"outOfStock"`
	LowStock   int64 `json:"lowStock"`
	Discounted int64 `json:"discounted"`
}
