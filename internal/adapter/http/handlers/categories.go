package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/adapter/http/mapper"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
	"github.com/mew228/Flowstate/pkg/apierrors"
)

type CategoryHandler struct {
	categoryService ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	categories, err := h.categoryService.List(c.Request.Context(), user.ID)
	if err != nil {
		zap.L().Error("failed to list categories", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListCategories, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCategoryItems(categories))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	category, err := h.categoryService.Add(c.Request.Context(), user.ID, req.Label)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCategory):
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
			)
		case errors.Is(err, domain.ErrCategoryExists):
			c.JSON(
				http.StatusConflict,
				apierrors.CreateErrorWithData(http.StatusConflict, apierrors.MsgCategoryExists, lang, map[string]any{"Label": strings.TrimSpace(req.Label)}),
			)
		default:
			zap.L().Error("failed to create category", zap.String("user_id", user.ID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateCategory, lang),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCategoryItem(category))
}
