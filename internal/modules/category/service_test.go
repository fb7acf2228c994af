package category

import (
	"fmt"
	"testing"

	"github.com/smartnotes/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CategoryModel{}, &models.NoteModel{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	svc := NewService(db)
	require.NoError(t, svc.EnsureDefaults())
	return svc, db
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "deep-work", Slugify("Deep Work"))
	assert.Equal(t, "side-projects", Slugify("  Side!! Projects  "))
	assert.Equal(t, "a1-b2", Slugify("A1 / B2"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestEnsureDefaultsIdempotent(t *testing.T) {
	svc, db := testService(t)

	require.NoError(t, svc.EnsureDefaults())

	var count int64
	require.NoError(t, db.Model(&models.CategoryModel{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)
}

func TestListPutsUncategorizedLast(t *testing.T) {
	svc, _ := testService(t)

	categories, err := svc.List()
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, models.UncategorizedSlug, categories[len(categories)-1].Slug)
}

func TestCreateAndConflict(t *testing.T) {
	svc, _ := testService(t)

	created, err := svc.Create("Deep Work", "Deep Work", "#112233")
	require.NoError(t, err)
	assert.Equal(t, "deep-work", created.Slug)

	_, err = svc.Create("Deep   Work!", "Another", "#112233")
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.Create("Uncategorized", "Nope", "#112233")
	assert.ErrorIs(t, err, ErrProtected)

	_, err = svc.Create("!!!", "Nope", "#112233")
	assert.ErrorIs(t, err, ErrProtected)
}

func TestUpdateProtectsUncategorized(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Update(models.UncategorizedSlug, "New Name", "New", "#112233")
	assert.ErrorIs(t, err, ErrProtected)

	updated, err := svc.Update("work", "Day Job", "Day Job", "#112233")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Day Job", updated.Name)

	missing, err := svc.Update("no-such-slug", "X Y", "X", "#112233")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteReassignsNotes(t *testing.T) {
	svc, db := testService(t)

	note := models.NoteModel{UserID: "user-1", Text: "client meeting notes", CategorySlug: "work"}
	require.NoError(t, db.Create(&note).Error)

	deleted, err := svc.Delete("work")
	require.NoError(t, err)
	assert.True(t, deleted)

	var reloaded models.NoteModel
	require.NoError(t, db.First(&reloaded, "id = ?", note.ID).Error)
	assert.Equal(t, models.UncategorizedSlug, reloaded.CategorySlug)

	_, err = svc.Delete(models.UncategorizedSlug)
	assert.ErrorIs(t, err, ErrProtected)
}
