package middleware

import (
	"candypang_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const accessCodeHeader = "X-Access-Code"

// AccessGate protects the teacher surface with a shared classroom access
// code, checked against a bcrypt hash from configuration. An empty hash
// disables the gate, which is only acceptable in debug mode and is
// rejected during config validation otherwise.
func AccessGate(accessCodeHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accessCodeHash == "" {
			c.Next()
			return
		}

		code := c.GetHeader(accessCodeHeader)
		if code == "" {
			code = c.Query("accessCode")
		}
		if code == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(accessCodeHash), []byte(code)); err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
