package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	EditSecretHeader = "X-Edit-Secret"
	CapabilityHeader = "X-Page-Capability"
)

// editSecret prefers the header over a value carried in the body or form.
func editSecret(c *gin.Context, fromBody string) string {
	if v := strings.TrimSpace(c.GetHeader(EditSecretHeader)); v != "" {
		return v
	}
	return strings.TrimSpace(fromBody)
}

func capabilityToken(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader(CapabilityHeader)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query("token"))
}
