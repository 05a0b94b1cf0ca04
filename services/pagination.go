package services

import "gorm.io/gorm"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Paginate applies page-number pagination. Pages are 1-based; ordering
// is the caller's responsibility and must be deterministic.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = defaultPageSize
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
