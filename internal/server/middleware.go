package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/juristech/legara/internal/firmcontext"
)

const HeaderFirm = "X-Firm-ID"

// FirmContext resolves the calling firm from the X-Firm-ID header and
// rejects requests naming a firm that does not exist.
func (s *Server) FirmContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderFirm))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		firmID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if _, err := s.firmSvc.GetByID(c.Request.Context(), firmID); err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := firmcontext.WithFirmID(c.Request.Context(), firmID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func firmID(c *gin.Context) snowflake.ID {
	id, _ := firmcontext.FirmIDFromContext(c.Request.Context())
	return id
}

func (s *Server) intakeRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.intakeLimiter == nil {
			c.Next()
			return
		}

		result, err := s.intakeLimiter.Allow(c.Request.Context(), "intake:"+c.ClientIP(), 1, 10)
		if err != nil {
			// Redis being down must not take intake down with it.
			s.log.Warn("intake rate limit check failed")
			c.Next()
			return
		}
		if !result.Allowed {
			c.Header("Retry-After", result.RetryAfter.String())
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
