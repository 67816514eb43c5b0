package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
	"github.com/mew228/Flowstate/pkg/apierrors"
)

type BillingHandler struct {
	billingService ports.BillingService
}

func NewBillingHandler(billingService ports.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Checkout redirects to the hosted payment page.
func (h *BillingHandler) Checkout(c *gin.Context) {
	lang := middleware.GetLang(c)

	link, err := h.billingService.CheckoutURL()
	if err != nil {
		if errors.Is(err, domain.ErrBillingNotConfigured) {
			c.JSON(
				http.StatusServiceUnavailable,
				apierrors.CreateError(http.StatusServiceUnavailable, apierrors.MsgBillingNotConfigured, lang),
			)
			return
		}
		zap.L().Error("failed to build checkout url", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailBilling, lang),
		)
		return
	}

	c.Redirect(http.StatusFound, link)
}

// Return is where the payment page sends the user back, with success=true on payment.
func (h *BillingHandler) Return(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	paid, err := h.billingService.HandleReturn(c.Request.Context(), user.ID, c.Request.URL.Query())
	if err != nil {
		zap.L().Error("failed to record payment", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailBilling, middleware.GetLang(c)),
		)
		return
	}

	if paid {
		zap.L().Info("payment recorded", zap.String("user_id", user.ID))
	}
	c.JSON(http.StatusOK, dto.BillingReturnItem{Paid: paid})
}
