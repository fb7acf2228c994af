package labels

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/pkg/response"
)

type CreateLabelDTO struct {
	Name  string `json:"name"  binding:"required,min=1,max=40"`
	Color string `json:"color"`
}

type UpdateLabelDTO struct {
	Name  string `json:"name"  binding:"required,min=1,max=40"`
	Color string `json:"color" binding:"required"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/labels", authMW)

	group.GET("", h.list)
	group.POST("", h.create)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.GET("/:id/items", h.items)
	group.POST("/apply-auto", h.applyAuto)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	items, err := h.svc.ListWithCounts(userID)
	if err != nil {
		response.InternalError(c, "Failed to load labels", err)
		return
	}
	response.OK(c, gin.H{"labels": items})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid label payload")
		return
	}
	if dto.Color != "" && !ValidColor(dto.Color) {
		response.BadRequest(c, "Invalid label color")
		return
	}

	label, err := h.svc.Upsert(middleware.CurrentUserID(c), dto.Name, dto.Color)
	if errors.Is(err, ErrInvalidName) {
		response.BadRequest(c, "Invalid label name")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to create label", err)
		return
	}
	response.Created(c, gin.H{"label": label})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid label payload")
		return
	}

	label, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), dto.Name, dto.Color)
	if errors.Is(err, ErrInvalidName) {
		response.BadRequest(c, "Invalid label name or color")
		return
	}
	if errors.Is(err, ErrNameTaken) {
		response.Conflict(c, "Label name already in use")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to update label", err)
		return
	}
	if label == nil {
		response.NotFound(c, "Label not found")
		return
	}
	response.OK(c, gin.H{"label": label})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to delete label", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Label not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) items(c *gin.Context) {
	items, err := h.svc.Items(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to load label items", err)
		return
	}
	if items == nil {
		response.NotFound(c, "Label not found")
		return
	}
	response.OK(c, gin.H{
		"label": items.Label,
		"notes": items.Notes,
		"todos": items.Todos,
		"summary": gin.H{
			"noteCount": len(items.Notes),
			"todoCount": len(items.Todos),
		},
	})
}

func (h *Handler) applyAuto(c *gin.Context) {
	summary, err := h.svc.ApplyAuto(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to apply automatic labels", err)
		return
	}
	response.OK(c, gin.H{"summary": summary})
}
