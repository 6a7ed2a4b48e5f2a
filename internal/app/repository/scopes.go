package repository

import "gorm.io/gorm"

// Pagination defaults shared by every list endpoint
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SanitizePage clamps page/limit into their allowed ranges
func SanitizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate is a gorm scope applying offset/limit for a sanitized page
func Paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	page, limit = SanitizePage(page, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
