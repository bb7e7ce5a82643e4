package models

// PaginatedResponse is one page of a listing. TotalPages is zero for an empty listing.
type PaginatedResponse struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPaginatedResponse(data any, total, page, pageSize int) PaginatedResponse {

	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
