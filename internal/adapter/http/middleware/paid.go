package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/pkg/apierrors"
)

type PaidChecker interface {
	IsPaid(ctx context.Context, userID string) (bool, error)
}

// PaidMiddleware rejects users without access to the task board with 402.
// It must run after AuthMiddleware.
func PaidMiddleware(billing PaidChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		user, ok := GetUser(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		paid, err := billing.IsPaid(c.Request.Context(), user.ID)
		if err != nil {
			zap.L().Error("failed to read paid status", zap.String("user_id", user.ID), zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailBilling, lang),
			)
			return
		}

		if !paid {
			c.AbortWithStatusJSON(
				http.StatusPaymentRequired,
				apierrors.CreateError(http.StatusPaymentRequired, apierrors.MsgPaymentRequired, lang),
			)
			return
		}

		c.Next()
	}
}
