package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

const (
	// HeaderSessionID carries the opaque session identifier.
	HeaderSessionID = "X-Session-ID"

	ctxMemberID = "member_id"
)

// RequireSession resolves the session header to a member and stores the
// member ID on the request context. Missing or unknown sessions get 401.
func (s *Server) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(HeaderSessionID)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		sess, err := s.sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
				return
			}
			s.log.Error("session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}

		c.Set(ctxMemberID, sess.MemberID)
		c.Next()
	}
}

// RequireAction enforces the access policy for the resolved member.
func (s *Server) RequireAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := c.GetString(ctxMemberID)
		if !s.policy.Check(memberID, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrPermissionDenied.Error()})
			return
		}
		c.Next()
	}
}
