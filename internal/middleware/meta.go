package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/pkg/middleware/requestid"
)

const (
	responseMetaKey = "response_meta"
	metaStartKey    = "response_meta_start"
)

// WithResponseMeta starts the per-request metadata map reported in JSON envelopes.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the page was served from the read cache.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)["cached"] = hit
}

// SetDataSource records where an activity page's data came from (mock or live).
func SetDataSource(c *gin.Context, source string) {
	ensureMeta(c)["source"] = source
}

// ExtractMeta returns the metadata of the current request with timing and request id filled in.
// It returns nil when nothing was recorded and WithResponseMeta is not installed.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	v, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	meta, _ := v.(map[string]interface{})
	if meta == nil {
		return nil
	}
	if start, ok := c.Get(metaStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	if id := requestid.Value(c); id != "" {
		meta["request_id"] = id
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(responseMetaKey); ok {
		if meta, ok := v.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
