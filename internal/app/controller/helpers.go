package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
)

// parsePagination reads ?page= and ?limit= and clamps them to the allowed
// range. Every list endpoint shares this behavior.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return repository.SanitizePage(page, limit)
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads an optional numeric query parameter
func parseUintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}

// listResponse is the shared list envelope: the entity key carries the rows
// and total/page/limit drive client pagination.
func listResponse(key string, items interface{}, total int64, page, limit int) gin.H {
	return gin.H{
		key:     items,
		"total": total,
		"page":  page,
		"limit": limit,
	}
}
