// Package paging implements the page/size contract shared by list endpoints.
package paging

import (
	"strconv"

	"github.com/GlebRadaev/commerce/internal/apperr"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

type Params struct {
	Page int
	Size int
}

// Parse reads raw query values. Empty values fall back to defaults.
func Parse(rawPage, rawSize string) (Params, error) {
	p := Params{Page: DefaultPage, Size: DefaultSize}
	if rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil {
			return p, apperr.New(apperr.KindValidation, "page must be an integer").With("page", rawPage)
		}
		p.Page = page
	}
	if rawSize != "" {
		size, err := strconv.Atoi(rawSize)
		if err != nil {
			return p, apperr.New(apperr.KindValidation, "size must be an integer").With("size", rawSize)
		}
		p.Size = size
	}
	return p, p.Validate()
}

func (p Params) Validate() error {
	if p.Page < 1 {
		return apperr.New(apperr.KindValidation, "page must be at least 1").With("page", p.Page)
	}
	if p.Size < 1 || p.Size > MaxSize {
		return apperr.New(apperr.KindValidation, "size must be between 1 and 100").With("size", p.Size)
	}
	return nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func NewPage[T any](items []T, total int, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = (total + p.Size - 1) / p.Size
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		Size:        p.Size,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}

// Map converts the items of a page while keeping its counters.
func Map[T, R any](src Page[T], fn func(T) R) Page[R] {
	items := make([]R, 0, len(src.Items))
	for _, item := range src.Items {
		items = append(items, fn(item))
	}
	return Page[R]{
		Items:       items,
		Total:       src.Total,
		Page:        src.Page,
		Size:        src.Size,
		TotalPages:  src.TotalPages,
		HasNext:     src.HasNext,
		HasPrevious: src.HasPrevious,
	}
}
