package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/smartnotes/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LabelModel{}, &models.TodoModel{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seed(t *testing.T, db *gorm.DB, userID, content string, done bool, at time.Time) models.TodoModel {
	t.Helper()
	todo := models.TodoModel{UserID: userID, Content: content, IsDone: done}
	todo.CreatedAt = at
	require.NoError(t, db.Create(&todo).Error)
	return todo
}

func TestListOrdersUndoneFirstThenNewest(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed(t, db, "user-1", "old done", true, base)
	seed(t, db, "user-1", "old undone", false, base.Add(time.Minute))
	seed(t, db, "user-1", "new undone", false, base.Add(2*time.Minute))
	seed(t, db, "user-2", "other user", false, base)

	todos, err := svc.List("user-1")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "new undone", todos[0].Content)
	assert.Equal(t, "old undone", todos[1].Content)
	assert.Equal(t, "old done", todos[2].Content)
}

func TestSetDone(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	todo := seed(t, db, "user-1", "buy eggs", false, time.Now())

	updated, err := svc.SetDone("user-1", todo.ID, true)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsDone)

	// Repeating the same state is a no-op, not a 404.
	updated, err = svc.SetDone("user-1", todo.ID, true)
	require.NoError(t, err)
	require.NotNil(t, updated)

	missing, err := svc.SetDone("user-2", todo.ID, false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteScopedToOwner(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	todo := seed(t, db, "user-1", "buy eggs", false, time.Now())

	deleted, err := svc.Delete("user-2", todo.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.Delete("user-1", todo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
