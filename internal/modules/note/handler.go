package note

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/modules/labels"
	"github.com/smartnotes/core/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	labels *labels.Service
}

func NewHandler(svc *Service, labelSvc *labels.Service) *Handler {
	return &Handler{svc: svc, labels: labelSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	notes := rg.Group("/notes", authMW)

	notes.GET("", h.list)
	notes.POST("", h.create)
	notes.PATCH("/:id", h.update)
	notes.DELETE("/:id", h.delete)
	notes.POST("/:id/labels", h.addLabel)
	notes.DELETE("/:id/labels", h.removeLabel)
}

func (h *Handler) list(c *gin.Context) {
	notes, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to load notes", err)
		return
	}
	response.OK(c, gin.H{"notes": notes})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid note payload")
		return
	}
	if msg := dto.Validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		response.InternalError(c, "Failed to create note", err)
		return
	}
	response.Created(c, result)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid note payload")
		return
	}

	note, err := h.svc.Reassign(middleware.CurrentUserID(c), c.Param("id"), dto.Category)
	if errors.Is(err, ErrUnknownCategory) {
		response.BadRequest(c, "Invalid category")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to update note", err)
		return
	}
	if note == nil {
		response.NotFound(c, "Note not found")
		return
	}
	response.OK(c, gin.H{"note": note})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to delete note", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Note not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) addLabel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	noteID := c.Param("id")

	owns, err := h.svc.Owns(userID, noteID)
	if err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}
	if !owns {
		response.NotFound(c, "Note not found")
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

	if _, err := h.labels.AttachNote(noteID, label.ID); err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}

	attached, err := h.labels.NoteLabels(noteID)
	if err != nil {
		response.InternalError(c, "Failed to add label", err)
		return
	}
	response.OK(c, gin.H{"labels": attached})
}

func (h *Handler) removeLabel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	noteID := c.Param("id")

	owns, err := h.svc.Owns(userID, noteID)
	if err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}
	if !owns {
		response.NotFound(c, "Note not found")
		return
	}

	labelID := c.Query("labelId")
	if labelID == "" {
		response.BadRequest(c, "labelId is required")
		return
	}

	if err := h.labels.DetachNote(userID, noteID, labelID); err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}

	attached, err := h.labels.NoteLabels(noteID)
	if err != nil {
		response.InternalError(c, "Failed to remove label", err)
		return
	}
	response.OK(c, gin.H{"labels": attached})
}
