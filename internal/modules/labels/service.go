package labels

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/modules/ai"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrInvalidName marks a label name that is empty after normalization.
	ErrInvalidName = errors.New("invalid label name")
	// ErrNameTaken marks a rename colliding with another label of the user.
	ErrNameTaken = errors.New("label name taken")
)

const (
	applyAutoScanLimit = 500
	applyAutoWorkers   = 4
)

type Service struct {
	db         *gorm.DB
	classifier ai.Classifier
}

func NewService(db *gorm.DB, classifier ai.Classifier) *Service {
	return &Service{db: db, classifier: classifier}
}

// Upsert returns the user's label with the given name, creating it on
// first use. Names collide case-insensitively per user; a concurrent
// insert losing the race falls back to selecting the winner's row.
func (s *Service) Upsert(userID, name, color string) (*models.LabelModel, error) {
	normalized := NormalizeLabelName(name)
	if normalized == "" {
		return nil, ErrInvalidName
	}
	nameLower := strings.ToLower(normalized)

	var existing models.LabelModel
	err := s.db.Where("user_id = ? AND name_lower = ?", userID, nameLower).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	selected := color
	if !ValidColor(selected) {
		selected = PickColor(normalized)
	}

	label := models.LabelModel{
		UserID:    userID,
		Name:      normalized,
		NameLower: nameLower,
		Color:     selected,
	}
	if err := s.db.Create(&label).Error; err != nil {
		var winner models.LabelModel
		if selErr := s.db.Where("user_id = ? AND name_lower = ?", userID, nameLower).First(&winner).Error; selErr == nil {
			return &winner, nil
		}
		return nil, err
	}
	return &label, nil
}

func (s *Service) List(userID string) ([]models.LabelModel, error) {
	var labels []models.LabelModel
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&labels).Error
	return labels, err
}

// LabelWithCounts is a list row carrying per-label usage counts.
type LabelWithCounts struct {
	models.LabelModel
	NoteCount int64 `json:"note_count"`
	TodoCount int64 `json:"todo_count"`
}

func (s *Service) ListWithCounts(userID string) ([]LabelWithCounts, error) {
	labels, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	type countRow struct {
		LabelID string
		Total   int64
	}
	noteCounts := make(map[string]int64, len(labels))
	var rows []countRow
	err = s.db.Table("note_labels").
		Select("note_labels.label_id AS label_id, COUNT(*) AS total").
		Joins("JOIN notes ON notes.id = note_labels.note_id").
		Where("notes.user_id = ?", userID).
		Group("note_labels.label_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		noteCounts[row.LabelID] = row.Total
	}

	todoCounts := make(map[string]int64, len(labels))
	rows = rows[:0]
	err = s.db.Table("todo_labels").
		Select("todo_labels.label_id AS label_id, COUNT(*) AS total").
		Joins("JOIN todos ON todos.id = todo_labels.todo_id").
		Where("todos.user_id = ?", userID).
		Group("todo_labels.label_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		todoCounts[row.LabelID] = row.Total
	}

	out := make([]LabelWithCounts, len(labels))
	for i, label := range labels {
		out[i] = LabelWithCounts{
			LabelModel: label,
			NoteCount:  noteCounts[label.ID],
			TodoCount:  todoCounts[label.ID],
		}
	}
	return out, nil
}

func (s *Service) Get(userID, id string) (*models.LabelModel, error) {
	var label models.LabelModel
	err := s.db.Where("user_id = ?", userID).First(&label, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &label, nil
}

// Update renames and recolors a label. Returns nil when the label does
// not exist or is not owned by the user.
func (s *Service) Update(userID, id, name, color string) (*models.LabelModel, error) {
	normalized := NormalizeLabelName(name)
	if normalized == "" {
		return nil, ErrInvalidName
	}
	if !ValidColor(color) {
		return nil, ErrInvalidName
	}

	label, err := s.Get(userID, id)
	if err != nil || label == nil {
		return nil, err
	}

	nameLower := strings.ToLower(normalized)

	var clash int64
	err = s.db.Model(&models.LabelModel{}).
		Where("user_id = ? AND name_lower = ? AND id <> ?", userID, nameLower, id).
		Count(&clash).Error
	if err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, ErrNameTaken
	}

	updates := map[string]interface{}{
		"name":       normalized,
		"name_lower": nameLower,
		"color":      color,
	}
	if err := s.db.Model(label).Updates(updates).Error; err != nil {
		return nil, err
	}
	return label, nil
}

// Delete removes a label and, via cascade, its note/todo links.
func (s *Service) Delete(userID, id string) (bool, error) {
	res := s.db.Where("user_id = ?", userID).Delete(&models.LabelModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// LabelItems bundles a label with everything it is attached to.
type LabelItems struct {
	Label models.LabelModel  `json:"label"`
	Notes []models.NoteModel `json:"notes"`
	Todos []models.TodoModel `json:"todos"`
}

func (s *Service) Items(userID, id string) (*LabelItems, error) {
	label, err := s.Get(userID, id)
	if err != nil || label == nil {
		return nil, err
	}

	var notes []models.NoteModel
	err = s.db.
		Joins("JOIN note_labels ON note_labels.note_id = notes.id").
		Where("note_labels.label_id = ? AND notes.user_id = ?", label.ID, userID).
		Order("notes.created_at DESC").
		Limit(300).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	var todos []models.TodoModel
	err = s.db.
		Joins("JOIN todo_labels ON todo_labels.todo_id = todos.id").
		Where("todo_labels.label_id = ? AND todos.user_id = ?", label.ID, userID).
		Order("todos.is_done ASC, todos.created_at DESC").
		Limit(300).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}

	return &LabelItems{Label: *label, Notes: notes, Todos: todos}, nil
}

// NoteLabels lists a note's labels. Ownership of the note must already
// be checked by the caller.
func (s *Service) NoteLabels(noteID string) ([]models.LabelModel, error) {
	var labels []models.LabelModel
	err := s.db.
		Joins("JOIN note_labels ON note_labels.label_id = labels.id").
		Where("note_labels.note_id = ?", noteID).
		Order("labels.name ASC").
		Find(&labels).Error
	return labels, err
}

func (s *Service) TodoLabels(todoID string) ([]models.LabelModel, error) {
	var labels []models.LabelModel
	err := s.db.
		Joins("JOIN todo_labels ON todo_labels.label_id = labels.id").
		Where("todo_labels.todo_id = ?", todoID).
		Order("labels.name ASC").
		Find(&labels).Error
	return labels, err
}

// AttachNote links a label to a note, ignoring an existing link.
// Returns whether a new link was created.
func (s *Service) AttachNote(noteID, labelID string) (bool, error) {
	var count int64
	if err := s.db.Table("note_labels").
		Where("note_id = ? AND label_id = ?", noteID, labelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	note := models.NoteModel{Base: models.Base{ID: noteID}}
	label := models.LabelModel{Base: models.Base{ID: labelID}}
	if err := s.db.Model(&note).Association("Labels").Append(&label); err != nil {
		return false, err
	}
	return true, nil
}

// DetachNote removes a note-label link when the label belongs to the user.
func (s *Service) DetachNote(userID, noteID, labelID string) error {
	label, err := s.Get(userID, labelID)
	if err != nil {
		return err
	}
	if label == nil {
		return nil
	}
	note := models.NoteModel{Base: models.Base{ID: noteID}}
	return s.db.Model(&note).Association("Labels").Delete(&models.LabelModel{Base: models.Base{ID: labelID}})
}

func (s *Service) AttachTodo(todoID, labelID string) (bool, error) {
	var count int64
	if err := s.db.Table("todo_labels").
		Where("todo_id = ? AND label_id = ?", todoID, labelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	todo := models.TodoModel{Base: models.Base{ID: todoID}}
	label := models.LabelModel{Base: models.Base{ID: labelID}}
	if err := s.db.Model(&todo).Association("Labels").Append(&label); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) DetachTodo(userID, todoID, labelID string) error {
	label, err := s.Get(userID, labelID)
	if err != nil {
		return err
	}
	if label == nil {
		return nil
	}
	todo := models.TodoModel{Base: models.Base{ID: todoID}}
	return s.db.Model(&todo).Association("Labels").Delete(&models.LabelModel{Base: models.Base{ID: labelID}})
}

// ApplySummary reports one apply-auto sweep.
type ApplySummary struct {
	NotesScanned   int   `json:"notesScanned"`
	TodosScanned   int   `json:"todosScanned"`
	NoteLinksAdded int64 `json:"noteLinksAdded"`
	TodoLinksAdded int64 `json:"todoLinksAdded"`
	LabelsCreated  int   `json:"labelsCreated"`
}

// ApplyAuto sweeps the user's unlabeled notes and todos, suggesting labels
// for each and attaching only labels that already exist. Suggestion calls
// run in a bounded worker pool since each may hit the classifier.
func (s *Service) ApplyAuto(ctx context.Context, userID string) (*ApplySummary, error) {
	existing, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	existingNames := make([]string, len(existing))
	idByLowerName := make(map[string]string, len(existing))
	for i, label := range existing {
		existingNames[i] = label.Name
		idByLowerName[strings.ToLower(label.Name)] = label.ID
	}

	var notes []models.NoteModel
	err = s.db.
		Where("user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM note_labels WHERE note_labels.note_id = notes.id)").
		Order("created_at DESC").
		Limit(applyAutoScanLimit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	var todos []models.TodoModel
	err = s.db.
		Where("user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM todo_labels WHERE todo_labels.todo_id = todos.id)").
		Order("created_at DESC").
		Limit(applyAutoScanLimit).
		Find(&todos).Error
	if err != nil {
		return nil, err
	}

	var noteLinks, todoLinks atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(applyAutoWorkers)

	for _, note := range notes {
		noteID, text := note.ID, strings.TrimSpace(note.Text)
		if text == "" {
			continue
		}
		g.Go(func() error {
			for _, name := range s.Suggest(gctx, text, existingNames) {
				labelID, ok := idByLowerName[strings.ToLower(name)]
				if !ok {
					continue
				}
				added, err := s.AttachNote(noteID, labelID)
				if err != nil {
					return err
				}
				if added {
					noteLinks.Add(1)
				}
			}
			return nil
		})
	}

	for _, todo := range todos {
		todoID, text := todo.ID, strings.TrimSpace(todo.Content)
		if text == "" {
			continue
		}
		g.Go(func() error {
			for _, name := range s.Suggest(gctx, text, existingNames) {
				labelID, ok := idByLowerName[strings.ToLower(name)]
				if !ok {
					continue
				}
				added, err := s.AttachTodo(todoID, labelID)
				if err != nil {
					return err
				}
				if added {
					todoLinks.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ApplySummary{
		NotesScanned:   len(notes),
		TodosScanned:   len(todos),
		NoteLinksAdded: noteLinks.Load(),
		TodoLinksAdded: todoLinks.Load(),
	}, nil
}
