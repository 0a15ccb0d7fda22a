package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

const ValidatedBodyKey = "validatedBody"

func ValidateBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body T
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.AbortWithError(400, apperror.Validation(err.Error()))
			return
		}

		if err := dto.Validate.Struct(&body); err != nil {
			_ = c.AbortWithError(400, err)
			return
		}

		c.Set(ValidatedBodyKey, body)

		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateBody[T].
func ValidatedBody[T any](c *gin.Context) T {
	return c.MustGet(ValidatedBodyKey).(T)
}
