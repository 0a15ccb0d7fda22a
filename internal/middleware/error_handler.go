package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		errs := c.Errors

		if len(errs) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError

		if errors.As(err, &appErr) {
			c.AbortWithStatusJSON(appErr.Status, gin.H{
				"error": appErr.Message,
				"kind":  appErr.Kind,
			})
			return
		}

		var validationErr validator.ValidationErrors

		if errors.As(err, &validationErr) {
			messages := make([]string, 0, len(validationErr))
			for _, fe := range validationErr {
				if dto.Trans != nil {
					messages = append(messages, fe.Translate(dto.Trans))
				} else {
					messages = append(messages, fe.Error())
				}
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": messages,
				"kind":  apperror.KindValidation,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
			"kind":  apperror.KindInternal,
		})
	}
}

func PanicHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal Server Error",
			"kind":  apperror.KindInternal,
		})
	})
}
