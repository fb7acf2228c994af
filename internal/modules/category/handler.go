package category

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/pkg/response"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type CreateCategoryDTO struct {
	Name  string `json:"name"  binding:"required,min=2,max=40"`
	Label string `json:"label" binding:"required,min=1,max=40"`
	Color string `json:"color"`
}

type UpdateCategoryDTO struct {
	Name  string `json:"name"  binding:"required,min=2,max=40"`
	Label string `json:"label" binding:"required,min=1,max=40"`
	Color string `json:"color" binding:"required"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	categories := rg.Group("/categories")

	categories.GET("", h.list)

	authed := categories.Group("", authMW)
	authed.POST("", h.create)
	authed.PATCH("/:slug", h.update)
	authed.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	categories, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "Failed to load categories", err)
		return
	}
	response.OK(c, gin.H{"categories": categories})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid category payload")
		return
	}
	if dto.Color == "" {
		dto.Color = "#475569"
	}
	if !hexColorPattern.MatchString(dto.Color) {
		response.BadRequest(c, "Invalid category color")
		return
	}

	category, err := h.svc.Create(dto.Name, dto.Label, dto.Color)
	if errors.Is(err, ErrProtected) {
		response.BadRequest(c, "Invalid category name")
		return
	}
	if errors.Is(err, ErrSlugTaken) {
		response.Conflict(c, "Category already exists")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to create category", err)
		return
	}
	response.Created(c, gin.H{"category": category})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid category payload")
		return
	}
	if !hexColorPattern.MatchString(dto.Color) {
		response.BadRequest(c, "Invalid category color")
		return
	}

	category, err := h.svc.Update(c.Param("slug"), dto.Name, dto.Label, dto.Color)
	if errors.Is(err, ErrProtected) {
		response.BadRequest(c, "Cannot edit uncategorized")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to update category", err)
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, gin.H{"category": category})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("slug"))
	if errors.Is(err, ErrProtected) {
		response.BadRequest(c, "Cannot delete uncategorized")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to delete category", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
