package response

import (
	"sublet-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// copyAs maps src onto a new T by field name.
func copyAs[T any](src any) (*T, error) {
	var dst T
	if err := copier.Copy(&dst, src); err != nil {
		return nil, err
	}
	return &dst, nil
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func fromPageInfo(p queries.PageInfo) PageInfo {
	return PageInfo{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}
