package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/adapter/http/mapper"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/adapter/http/validation"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
	"github.com/mew228/Flowstate/internal/core/query"
	"github.com/mew228/Flowstate/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	location    *time.Location
}

// NewTaskHandler builds the task endpoints. Due dates in payloads are read as
// calendar dates in location.
func NewTaskHandler(taskService ports.TaskService, location *time.Location) *TaskHandler {
	if location == nil {
		location = time.Local
	}
	return &TaskHandler{taskService: taskService, location: location}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	tasks, err := h.taskService.View(c.Request.Context(), user.ID, query.ViewParams{
		Category: c.DefaultQuery("category", domain.CategoryAll),
		Search:   c.Query("q"),
		Status:   domain.ParseStatusFilter(c.Query("status")),
	})
	if err != nil {
		if h.respondDomainError(c, err, lang) {
			return
		}

		zap.L().Error("failed to list tasks", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	stats, err := h.taskService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		if h.respondDomainError(c, err, lang) {
			return
		}

		zap.L().Error("failed to compute stats", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToStatsItem(stats))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	var req dto.CreateTaskRequest
	raw, ok := bindJSONWithRaw(c, &req)
	if !ok {
		invalidTaskPayload(c, lang)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw, h.location)
	if err != nil {
		invalidTaskPayload(c, lang)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		if h.respondDomainError(c, err, lang) {
			return
		}

		zap.L().Error("failed to create task", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindJSONWithRaw(c, &req)
	if !ok {
		invalidTaskPayload(c, lang)
		return
	}

	patch, err := validation.BuildUpdateTaskInput(req, raw, h.location)
	if err != nil {
		invalidTaskPayload(c, lang)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), user.ID, taskID, patch)
	h.respondTask(c, task, err, lang, "failed to update task")
}

func (h *TaskHandler) ToggleTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.Toggle(c.Request.Context(), user.ID, taskID)
	h.respondTask(c, task, err, lang, "failed to toggle task")
}

func (h *TaskHandler) ToggleSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}
	subtaskID := strings.TrimSpace(c.Param("subtaskId"))
	if subtaskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	task, err := h.taskService.ToggleSubtask(c.Request.Context(), user.ID, taskID, subtaskID)
	h.respondTask(c, task, err, lang, "failed to toggle subtask")
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.GetUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), user.ID, taskID); err != nil {
		if h.respondDomainError(c, err, lang) {
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondTask(c *gin.Context, task domain.Task, err error, lang, logMsg string) {
	if err != nil {
		if h.respondDomainError(c, err, lang) {
			return
		}

		zap.L().Error(logMsg, zap.String("task_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// respondDomainError writes the response for known domain errors and reports
// whether it did.
func (h *TaskHandler) respondDomainError(c *gin.Context, err error, lang string) bool {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrSubtaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgSubtaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrInvalidTask):
		invalidTaskPayload(c, lang)
	case errors.Is(err, domain.ErrPaymentRequired):
		c.JSON(
			http.StatusPaymentRequired,
			apierrors.CreateError(http.StatusPaymentRequired, apierrors.MsgPaymentRequired, lang),
		)
	default:
		return false
	}
	return true
}

func taskIDParam(c *gin.Context, lang string) (string, bool) {
	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" || len(taskID) > 64 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return "", false
	}
	return taskID, true
}

func invalidTaskPayload(c *gin.Context, lang string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
	)
}

// bindJSONWithRaw binds the body into req and also returns it as raw fields,
// so validation can tell an explicit null from an absent field.
func bindJSONWithRaw(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return nil, false
	}

	body, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body.([]byte), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
