package persistence

import (
	"github.com/devicedesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// findPage counts the filtered query, then loads one id-ordered window of
// it. Page size 0 loads every row and reports a single page. A window that
// starts past the last row is not queried.
func findPage[T any](query *gorm.DB, table string, req shared.PageRequest) (shared.Page[T], error) {
	req = req.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Page[T]{}, err
	}

	if req.PageSize > 0 && int64(req.Offset()) >= total {
		return shared.NewPage[T](nil, total, req), nil
	}

	window := query.Order(table + ".id ASC")
	if req.PageSize > 0 {
		window = window.Offset(req.Offset()).Limit(req.PageSize)
	}

	var items []T
	if err := window.Find(&items).Error; err != nil {
		return shared.Page[T]{}, err
	}

	return shared.NewPage(items, total, req), nil
}
