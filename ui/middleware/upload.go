package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for form fields and part headers around the file
const multipartOverhead = 64 * 1024

// LimitUpload caps the request body of form posts so an oversized upload
// fails while parsing instead of being spooled to disk
func LimitUpload(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || maxBytes <= 0 {
			c.Next()
			return
		}
		limit := maxBytes + multipartOverhead
		if c.Request.ContentLength > limit {
			log.Printf("[LimitUpload] rejecting %d byte body (limit %d)", c.Request.ContentLength, limit)
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
