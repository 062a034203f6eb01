package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	MaxPageSize = 100
	maxPage     = 1_000_000
)

// ParsePagination reads page and limit from the query string. Missing or
// invalid values fall back to the defaults; limit is capped at MaxPageSize
// and page at maxPage so the offset cannot overflow.
func ParsePagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return page, limit, (page - 1) * limit
}

// LikePattern builds a lower-cased %term% pattern for case-insensitive
// LIKE searches, escaping the wildcard characters.
func LikePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// QueryFloat parses an optional float query parameter.
func QueryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, false
	}
	return &v, true
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
