package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbSessionKey = "dbSession"

// DBSession gives every request its own gorm session bound to the request
// context, so a cancelled request aborts its queries.
func DBSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbSessionKey, db.WithContext(c.Request.Context()).Session(&gorm.Session{}))
		c.Next()
	}
}

// DB returns the request's session, or fallback bound to the request context
// when DBSession did not run.
func DB(c *gin.Context, fallback *gorm.DB) *gorm.DB {
	if v, ok := c.Get(dbSessionKey); ok {
		if db, ok := v.(*gorm.DB); ok && db != nil {
			return db
		}
	}
	return fallback.WithContext(c.Request.Context())
}
