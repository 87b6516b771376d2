package models

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection treats anything other than "desc" as ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}

	return Asc
}

// Reverse is used by list pages to build the toggle link of a column header.
func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}

	return Desc
}

type Sort struct {
	Field     string
	Direction Direction
}

// Pageable is a zero-based page request.
type Pageable struct {
	Page int
	Size int
	Sort *Sort
}

func NewPageable(page, size int) Pageable {
	if page < 0 {
		page = 0
	}

	if size < 1 {
		size = DefaultPageSize
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Pageable{Page: page, Size: size}
}

func (p Pageable) WithSort(field string, direction Direction) Pageable {
	if strings.TrimSpace(field) == "" {
		p.Sort = nil
		return p
	}

	p.Sort = &Sort{Field: strings.TrimSpace(field), Direction: direction}

	return p
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func NewPage[T any](content []T, total int64, pageable Pageable) *Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if pageable.Size > 0 {
		totalPages = int((total + int64(pageable.Size) - 1) / int64(pageable.Size))
	}

	return &Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        pageable.Page,
		Size:          pageable.Size,
	}
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 0
}

func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}
