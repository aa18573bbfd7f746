package handlers

import (
	"net/http"
	"strconv"
	"time"

	"fleet-scheduler-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// actor returns the acting user set by the Actor middleware
func actor(c *gin.Context) string {
	if a := c.GetString(string(logger.ActorKey)); a != "" {
		return a
	}
	return "unknown"
}

// pagination parses page and page_size query parameters
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// parseDate parses a YYYY-MM-DD query or path value
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateFormat, value)
}

// parseUUIDQuery parses an optional UUID query parameter; on a malformed
// value it writes the 400 response and returns the error
func parseUUIDQuery(c *gin.Context, param string) (*uuid.UUID, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + ": invalid UUID format"})
		return nil, err
	}
	return &id, nil
}

// listResponse is the standard paginated list envelope
type listResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
