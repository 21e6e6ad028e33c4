package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LimitBodySize caps request bodies at maxBytes.
func LimitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// MethodOverride lets HTML forms reach DELETE/PUT/PATCH routes by posting a
// _method field (or the X-HTTP-Method-Override header). It wraps the engine
// because gin picks the route before any gin middleware runs. Only
// urlencoded bodies are inspected so uploads are left unread.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get("X-HTTP-Method-Override")
			if method == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				if err := r.ParseForm(); err == nil {
					method = r.PostForm.Get("_method")
				}
			}
			switch m := strings.ToUpper(strings.TrimSpace(method)); m {
			case http.MethodDelete, http.MethodPut, http.MethodPatch:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
