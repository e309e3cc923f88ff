package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/randtest/src/battery"
)

const APIKeyHeader = "X-API-KEY"

type Handlers struct {
	battery *battery.Battery
	maxBits int
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewHandlers serves b. maxBits must match the limit b was configured with;
// it sizes the request body limit.
func NewHandlers(b *battery.Battery, maxBits int, timeout time.Duration, log *zap.SugaredLogger) *Handlers {
	if maxBits <= 0 {
		maxBits = battery.DefaultMaxBits
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handlers{battery: b, maxBits: maxBits, timeout: timeout, log: log}
}

// RequireAPIKey rejects requests whose X-API-KEY header differs from key.
// An empty key turns the check off.
func RequireAPIKey(key string) gin.HandlerFunc {
	want := []byte(key)
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(APIKeyHeader)), want) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
