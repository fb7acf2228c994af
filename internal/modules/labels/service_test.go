package labels

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/modules/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubClassifier struct {
	enabled bool
	labels  []string
	err     error
}

func (s stubClassifier) Enabled() bool { return s.enabled }

func (s stubClassifier) ExtractTodos(context.Context, string) ([]string, error) {
	return nil, errors.New("not scripted")
}

func (s stubClassifier) Categorize(context.Context, string, []string) (*ai.CategorySuggestion, error) {
	return nil, errors.New("not scripted")
}

func (s stubClassifier) SplitEntries(context.Context, string) ([]string, error) {
	return nil, errors.New("not scripted")
}

func (s stubClassifier) SuggestLabels(context.Context, string, []string) ([]string, error) {
	return s.labels, s.err
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.LabelModel{},
		&models.NoteModel{},
		&models.TodoModel{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedNote(t *testing.T, db *gorm.DB, userID, text string) models.NoteModel {
	t.Helper()
	note := models.NoteModel{UserID: userID, Text: text, CategorySlug: models.UncategorizedSlug}
	require.NoError(t, db.Create(&note).Error)
	return note
}

func seedTodo(t *testing.T, db *gorm.DB, userID, content string) models.TodoModel {
	t.Helper()
	todo := models.TodoModel{UserID: userID, Content: content}
	require.NoError(t, db.Create(&todo).Error)
	return todo
}

func TestUpsertCaseInsensitiveUniqueness(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{})

	first, err := svc.Upsert("user-1", "urgent", "")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Urgent", first.Name)

	second, err := svc.Upsert("user-1", "URGENT", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := svc.Upsert("user-2", "urgent", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestUpsertColorSelection(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{})

	label, err := svc.Upsert("user-1", "shopping", "#112233")
	require.NoError(t, err)
	assert.Equal(t, "#112233", label.Color)

	label, err = svc.Upsert("user-1", "work", "not-a-color")
	require.NoError(t, err)
	assert.Equal(t, PickColor("Work"), label.Color)
}

func TestUpsertInvalidName(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{})

	_, err := svc.Upsert("user-1", " !!! ", "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestListWithCounts(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	label, err := svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)

	note := seedNote(t, db, "user-1", "client meeting notes")
	todo := seedTodo(t, db, "user-1", "prep slides")

	added, err := svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = svc.AttachTodo(todo.ID, label.ID)
	require.NoError(t, err)
	assert.True(t, added)

	rows, err := svc.ListWithCounts("user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].NoteCount)
	assert.Equal(t, int64(1), rows[0].TodoCount)
}

func TestAttachNoteIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	label, err := svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)
	note := seedNote(t, db, "user-1", "client meeting notes")

	added, err := svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)
	assert.False(t, added)

	names, err := svc.NoteLabels(note.ID)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestAttachWritesShortJoinColumns(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	label, err := svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)
	note := seedNote(t, db, "user-1", "client meeting notes")
	todo := seedTodo(t, db, "user-1", "prep slides")

	_, err = svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)
	_, err = svc.AttachTodo(todo.ID, label.ID)
	require.NoError(t, err)

	var noteLinks, todoLinks int64
	require.NoError(t, db.Table("note_labels").
		Where("note_id = ? AND label_id = ?", note.ID, label.ID).
		Count(&noteLinks).Error)
	require.NoError(t, db.Table("todo_labels").
		Where("todo_id = ? AND label_id = ?", todo.ID, label.ID).
		Count(&todoLinks).Error)
	assert.Equal(t, int64(1), noteLinks)
	assert.Equal(t, int64(1), todoLinks)
}

func TestUpdateRejectsDuplicateName(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{})

	_, err := svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)
	home, err := svc.Upsert("user-1", "Home", "")
	require.NoError(t, err)

	_, err = svc.Update("user-1", home.ID, "work", "#112233")
	assert.ErrorIs(t, err, ErrNameTaken)

	// renaming to its own name (case change only) stays allowed
	renamed, err := svc.Update("user-1", home.ID, "HOME", "#112233")
	require.NoError(t, err)
	assert.Equal(t, "Home", renamed.Name)
}

func TestDetachNoteEnforcesLabelOwnership(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	label, err := svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)
	note := seedNote(t, db, "user-1", "client meeting notes")
	_, err = svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DetachNote("user-2", note.ID, label.ID))
	labels, err := svc.NoteLabels(note.ID)
	require.NoError(t, err)
	assert.Len(t, labels, 1)

	require.NoError(t, svc.DetachNote("user-1", note.ID, label.ID))
	labels, err = svc.NoteLabels(note.ID)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestSuggestClassifierFailureFallsBack(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{enabled: true, err: errors.New("upstream down")})

	got := svc.Suggest(context.Background(), "buy milk at the store", []string{"Errands"})
	assert.Equal(t, []string{"Shopping"}, got)
}

func TestSuggestClassifierLeadsFallbackFills(t *testing.T) {
	svc := NewService(testDB(t), stubClassifier{enabled: true, labels: []string{"errands", "ERRANDS"}})

	got := svc.Suggest(context.Background(), "buy milk at the store", []string{"Errands"})
	assert.Equal(t, []string{"Errands", "Shopping"}, got)
}

func TestApplyAutoAttachesOnlyExistingLabels(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	shopping, err := svc.Upsert("user-1", "Shopping", "")
	require.NoError(t, err)
	_, err = svc.Upsert("user-1", "Work", "")
	require.NoError(t, err)

	groceryNote := seedNote(t, db, "user-1", "buy milk at the store")
	seedNote(t, db, "user-1", "quiet reflections")
	workTodo := seedTodo(t, db, "user-1", "client meeting prep")
	seedTodo(t, db, "user-1", "urgent dentist visit today")

	summary, err := svc.ApplyAuto(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NotesScanned)
	assert.Equal(t, 2, summary.TodosScanned)
	assert.Equal(t, int64(1), summary.NoteLinksAdded)
	assert.Equal(t, int64(1), summary.TodoLinksAdded)
	assert.Equal(t, 0, summary.LabelsCreated)

	noteLabels, err := svc.NoteLabels(groceryNote.ID)
	require.NoError(t, err)
	require.Len(t, noteLabels, 1)
	assert.Equal(t, shopping.ID, noteLabels[0].ID)

	todoLabels, err := svc.TodoLabels(workTodo.ID)
	require.NoError(t, err)
	assert.Len(t, todoLabels, 1)

	var total int64
	require.NoError(t, db.Model(&models.LabelModel{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestApplyAutoSkipsLabeledItems(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, stubClassifier{})

	label, err := svc.Upsert("user-1", "Shopping", "")
	require.NoError(t, err)
	note := seedNote(t, db, "user-1", "buy milk at the store")
	_, err = svc.AttachNote(note.ID, label.ID)
	require.NoError(t, err)

	summary, err := svc.ApplyAuto(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.NotesScanned)
	assert.Equal(t, int64(0), summary.NoteLinksAdded)
}
