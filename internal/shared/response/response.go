package response

import (
	"github.com/gin-gonic/gin"
)

// PaginationMeta mirrors the paginate metadata returned by the payroll API.
// PagingCounter is the 1-based index of the first item on the page.
type PaginationMeta struct {
	Total         int64 `json:"total"`
	PerPage       int   `json:"perPage"`
	PageCount     int   `json:"pageCount"`
	Page          int   `json:"page"`
	PagingCounter int64 `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PreviousPage  *int  `json:"previousPage"`
	NextPage      *int  `json:"nextPage"`
}

func NewPaginationMeta(total int64, page, perPage int) PaginationMeta {
	if page < 1 {
		page = 1
	}

	pageCount := 0
	if perPage > 0 {
		// ceil(total / perPage)
		pageCount = int((total + int64(perPage) - 1) / int64(perPage))
	}

	meta := PaginationMeta{
		Total:         total,
		PerPage:       perPage,
		PageCount:     pageCount,
		Page:          page,
		PagingCounter: int64(page-1)*int64(perPage) + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < pageCount,
	}
	if meta.HasPrevPage {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}

	return meta
}

// EmptyPaginationMeta is the zero state used when a list could not be loaded.
func EmptyPaginationMeta(page, perPage int) PaginationMeta {
	if page < 1 {
		page = 1
	}
	return PaginationMeta{
		PerPage: perPage,
		Page:    page,
	}
}

// StartItem is the 1-based index of the first item shown on the page.
func (m PaginationMeta) StartItem() int64 {
	return m.PagingCounter
}

// EndItem is the index of the last item shown: min(pagingCounter+perPage-1, total).
func (m PaginationMeta) EndItem() int64 {
	end := m.PagingCounter + int64(m.PerPage) - 1
	if end > m.Total {
		return m.Total
	}
	return end
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
