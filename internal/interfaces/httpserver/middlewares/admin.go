package middlewares

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey compares X-Admin-Key with the configured key. An unset key rejects every call.
func RequireAdminKey(adminKey string) gin.HandlerFunc {
	expected := []byte(adminKey)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(AdminKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(expected, got) != 1 {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "Invalid admin key", "a452cb57-7084-445c-96dc-73dd648fec7b")
			return
		}
		c.Next()
	}
}
