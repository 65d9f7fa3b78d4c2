package dto

import "github.com/GlebRadaev/commerce/pkg/paging"

type PaginationDTO struct {
	Page        int  `json:"page" example:"1"`
	Size        int  `json:"size" example:"20"`
	Total       int  `json:"total" example:"42"`
	TotalPages  int  `json:"totalPages" example:"3"`
	HasNext     bool `json:"hasNext" example:"true"`
	HasPrevious bool `json:"hasPrevious" example:"false"`
}

func NewPagination[T any](p paging.Page[T]) PaginationDTO {
	return PaginationDTO{
		Page:        p.Page,
		Size:        p.Size,
		Total:       p.Total,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
