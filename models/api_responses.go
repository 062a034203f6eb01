package models

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
)

type ApiResponse struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	Data            any          `json:"data,omitempty"`
	Pagination      *Pagination  `json:"pagination,omitempty"`
	Rate            *RateLimiter `json:"rate_limit,omitempty"`
	RequestedEntity string       `json:"requested_entity,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"12"`
	Total int64 `json:"total" example:"42"`
	Pages int   `json:"pages" example:"4"`
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

// NewPagination computes the page count for a result window.
func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// helper to fetch rate limiter info from Gin context
func getRateFromContext(c *gin.Context) *RateLimiter {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get("rateLimiter"); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func requestedEntity(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Method + " " + c.FullPath()
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Success:         true,
		Message:         message,
		Data:            data,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	return ApiResponse{
		Success:         true,
		Message:         message,
		Data:            data,
		Pagination:      meta,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Success:         false,
		Message:         message,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}
