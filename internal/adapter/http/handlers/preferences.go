package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/adapter/http/mapper"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/core/ports"
	"github.com/mew228/Flowstate/pkg/apierrors"
)

type PreferencesHandler struct {
	preferencesService ports.PreferencesService
}

func NewPreferencesHandler(preferencesService ports.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	prefs, err := h.preferencesService.Get(c.Request.Context(), user.ID)
	h.respond(c, prefs, err)
}

func (h *PreferencesHandler) ToggleTheme(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	prefs, err := h.preferencesService.ToggleTheme(c.Request.Context(), user.ID)
	h.respond(c, prefs, err)
}

// Me returns the signed-in user, used for the dashboard greeting.
func (h *PreferencesHandler) Me(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}

func (h *PreferencesHandler) respond(c *gin.Context, prefs ports.Preferences, err error) {
	if err != nil {
		zap.L().Error("failed to handle preferences", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailPreferences, middleware.GetLang(c)),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPreferencesItem(prefs))
}
