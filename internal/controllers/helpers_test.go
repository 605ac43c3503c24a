package controllers

import (
	"github.com/gin-gonic/gin"

	"aquabio-be/internal/middleware"
)

// withUserID simulates the auth middleware for handler tests.
func withUserID(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Next()
	}
}
