package note

import (
	"context"
	"errors"
	"strings"

	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/modules/categorize"
	"github.com/smartnotes/core/internal/modules/intake"
	"github.com/smartnotes/core/internal/pkg/markdown"
	"gorm.io/gorm"
)

const (
	listNotesLimit = 300
	listTodosLimit = 200
)

type Service struct {
	db         *gorm.DB
	intake     *intake.Service
	categorize *categorize.Service
}

func NewService(db *gorm.DB, intakeSvc *intake.Service, categorizeSvc *categorize.Service) *Service {
	return &Service{db: db, intake: intakeSvc, categorize: categorizeSvc}
}

// CreateResult is the outcome of one capture: the notes written plus the
// caller's refreshed todo list.
type CreateResult struct {
	Notes []models.NoteModel `json:"notes"`
	Todos []models.TodoModel `json:"todos"`
}

func (s *Service) categories() ([]models.CategoryModel, error) {
	var categories []models.CategoryModel
	err := s.db.Order("created_at ASC").Find(&categories).Error
	return categories, err
}

// Create runs the capture pipeline: partition the raw text into note and
// todo entries, categorize each note entry, and persist everything. A
// text-free image capture still produces one placeholder note.
func (s *Service) Create(ctx context.Context, userID string, dto CreateNoteDTO) (*CreateResult, error) {
	normalizedText := strings.TrimSpace(dto.Text)

	safeHTML := ""
	if dto.TextHTML != "" {
		safeHTML = markdown.SanitizeHTML(dto.TextHTML)
	} else if normalizedText != "" {
		safeHTML = markdown.Render(normalizedText)
	}

	categories, err := s.categories()
	if err != nil {
		return nil, err
	}

	var entries []categorize.Result
	var todoContents []string
	if normalizedText != "" {
		partition := s.intake.Classify(ctx, normalizedText)
		todoContents = partition.Todos
		for _, text := range partition.Notes {
			entries = append(entries, s.categorize.Analyze(ctx, text, categories)...)
		}
	}

	kept := entries[:0]
	for _, entry := range entries {
		if strings.TrimSpace(entry.Text) != "" {
			kept = append(kept, entry)
		}
	}
	entries = kept

	if len(entries) == 0 && len(todoContents) == 0 {
		text := normalizedText
		if text == "" {
			text = "Image note"
		}
		entries = append(entries, categorize.Result{
			Text:         text,
			CategorySlug: models.UncategorizedSlug,
			Confidence:   0.2,
			Source:       categorize.SourceRules,
		})
	}

	created := make([]models.NoteModel, 0, len(entries))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			note := models.NoteModel{
				UserID:       userID,
				Text:         entry.Text,
				TextHTML:     safeHTML,
				ImageData:    dto.ImageData,
				CategorySlug: entry.CategorySlug,
				Confidence:   entry.Confidence,
				Tags:         models.StringArray(entry.Tags),
				Source:       entry.Source,
			}
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
			created = append(created, note)
		}
		for _, content := range todoContents {
			todo := models.TodoModel{UserID: userID, Content: content}
			if err := tx.Create(&todo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(created))
	for i, note := range created {
		ids[i] = note.ID
	}
	var notes []models.NoteModel
	if len(ids) > 0 {
		err = s.db.Preload("Category").Preload("Labels").
			Where("user_id = ? AND id IN ?", userID, ids).
			Order("created_at DESC").
			Find(&notes).Error
		if err != nil {
			return nil, err
		}
	}

	todos, err := s.ListTodos(userID)
	if err != nil {
		return nil, err
	}

	return &CreateResult{Notes: notes, Todos: todos}, nil
}

func (s *Service) List(userID string) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	err := s.db.Preload("Category").Preload("Labels").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listNotesLimit).
		Find(&notes).Error
	return notes, err
}

func (s *Service) ListTodos(userID string) ([]models.TodoModel, error) {
	var todos []models.TodoModel
	err := s.db.Preload("Labels").
		Where("user_id = ?", userID).
		Order("is_done ASC, created_at DESC").
		Limit(listTodosLimit).
		Find(&todos).Error
	return todos, err
}

func (s *Service) Get(userID, id string) (*models.NoteModel, error) {
	var note models.NoteModel
	err := s.db.Preload("Category").Preload("Labels").
		Where("user_id = ?", userID).
		First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// ErrUnknownCategory marks a reassignment to a category slug that does
// not exist.
var ErrUnknownCategory = errors.New("unknown category")

// Reassign moves a note to another category. Only the category assignment
// is mutable after capture.
func (s *Service) Reassign(userID, id, categorySlug string) (*models.NoteModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("slug = ?", categorySlug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUnknownCategory
	}

	owns, err := s.Owns(userID, id)
	if err != nil || !owns {
		return nil, err
	}

	// Update through a fresh model: Model(note) with a preloaded Category
	// would save the association's slug back over the new one.
	err = s.db.Model(&models.NoteModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("category_slug", categorySlug).Error
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes a note. Todos extracted from it are soft-referenced and
// survive.
func (s *Service) Delete(userID, id string) (bool, error) {
	res := s.db.Where("user_id = ?", userID).Delete(&models.NoteModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (s *Service) Owns(userID, id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.NoteModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}
