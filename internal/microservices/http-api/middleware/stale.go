package middleware

import "github.com/gin-gonic/gin"

// StaleHeader marks responses built from cached data after a store failure.
const StaleHeader = "X-Data-Stale"

func MarkStale(c *gin.Context, stale bool) {
	if stale {
		c.Header(StaleHeader, "true")
	}
}
