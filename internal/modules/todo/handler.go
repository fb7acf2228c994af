package todo

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/modules/labels"
	"github.com/smartnotes/core/internal/pkg/response"
)

type UpdateTodoDTO struct {
	IsDone *bool `json:"isDone" binding:"required"`
}

type AddLabelDTO struct {
	Name string `json:"name" binding:"required,min=1,max=40"`
}

type Handler struct {
	svc    *Service
	labels *labels.Service
}

func NewHandler(svc *Service, labelSvc *labels.Service) *Handler {
	return &Handler{svc: svc, labels: labelSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	todos := rg.Group("/todos", authMW)

	todos.GET("", h.list)
	todos.PATCH("/:id", h.update)
	todos.DELETE("/:id", h.delete)
	todos.POST("/:id/labels", h.addLabel)
	todos.DELETE("/:id/labels", h.removeLabel)
}

func (h *Handler) list(c *gin.Context) {
	todos, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to load todos", err)
		return
	}
	response.OK(c, gin.H{"todos": todos})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTodoDTO
	if err := c.ShouldBindJSON(&dto); err != nil || dto.IsDone == nil {
		response.BadRequest(c, "Invalid todo payload")
		return
	}

	todo, err := h.svc.SetDone(middleware.CurrentUserID(c), c.Param("id"), *dto.IsDone)
	if err != nil {
		response.InternalError(c, "Failed to update todo", err)
		return
	}
	if todo == nil {
		response.NotFound(c, "Todo not found")
		return
	}
	response.OK(c, gin.H{"todo": todo})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to delete todo", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Todo not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) addLabel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	todoID := c.Param("id")

	owns, err := h.svc.Owns(userID, todoID)
	if err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}
	if !owns {
		response.NotFound(c, "Todo not found")
		return
	}

	var dto AddLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid label payload")
		return
	}

	label, err := h.labels.Upsert(userID, dto.Name, "")
	if errors.Is(err, labels.ErrInvalidName) {
		response.BadRequest(c, "Invalid label name")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}

	if _, err := h.labels.AttachTodo(todoID, label.ID); err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}

	attached, err := h.labels.TodoLabels(todoID)
	if err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}
	response.OK(c, gin.H{"labels": attached})
}

func (h *Handler) removeLabel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	todoID := c.Param("id")

	owns, err := h.svc.Owns(userID, todoID)
	if err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}
	if !owns {
		response.NotFound(c, "Todo not found")
		return
	}

	labelID := c.Query("labelId")
	if labelID == "" {
		response.BadRequest(c, "labelId is required")
		return
	}

	if err := h.labels.DetachTodo(userID, todoID, labelID); err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}

	attached, err := h.labels.TodoLabels(todoID)
	if err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}
	response.OK(c, gin.H{"labels": attached})
}
