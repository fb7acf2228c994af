package todo

import (
	"errors"

	"github.com/smartnotes/core/internal/models"
	"gorm.io/gorm"
)

const listLimit = 200

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the user's todos, undone first then newest, labels embedded.
func (s *Service) List(userID string) ([]models.TodoModel, error) {
	var todos []models.TodoModel
	err := s.db.Preload("Labels").
		Where("user_id = ?", userID).
		Order("is_done ASC, created_at DESC").
		Limit(listLimit).
		Find(&todos).Error
	return todos, err
}

func (s *Service) Get(userID, id string) (*models.TodoModel, error) {
	var todo models.TodoModel
	err := s.db.Preload("Labels").
		Where("user_id = ?", userID).
		First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// SetDone flips completion state. Returns nil when the todo is missing or
// not owned by the user.
func (s *Service) SetDone(userID, id string, isDone bool) (*models.TodoModel, error) {
	todo, err := s.Get(userID, id)
	if err != nil || todo == nil {
		return nil, err
	}
	if err := s.db.Model(todo).Update("is_done", isDone).Error; err != nil {
		return nil, err
	}
	todo.IsDone = isDone
	return todo, nil
}

func (s *Service) Delete(userID, id string) (bool, error) {
	res := s.db.Where("user_id = ?", userID).Delete(&models.TodoModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (s *Service) Owns(userID, id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.TodoModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}
