package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt parses an integer query parameter, falling back to def on
// missing or unparseable values.
func QueryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
