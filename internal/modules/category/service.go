package category

import (
	"errors"
	"regexp"
	"strings"

	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/modules/categorize"
	"gorm.io/gorm"
)

var (
	// ErrProtected marks writes against the uncategorized fallback row.
	ErrProtected = errors.New("category is protected")
	// ErrSlugTaken marks a create whose derived slug already exists.
	ErrSlugTaken = errors.New("category slug already exists")
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a category name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// EnsureDefaults seeds the default category rows, leaving existing rows
// untouched. Called once at startup.
func (s *Service) EnsureDefaults() error {
	for _, category := range categorize.DefaultCategories() {
		err := s.db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns all categories, uncategorized last.
func (s *Service) List() ([]models.CategoryModel, error) {
	var categories []models.CategoryModel
	err := s.db.
		Order("CASE WHEN slug = 'uncategorized' THEN 1 ELSE 0 END, label ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (s *Service) Get(slug string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create adds a category under a slug derived from its name.
func (s *Service) Create(name, label, color string) (*models.CategoryModel, error) {
	slug := Slugify(name)
	if slug == "" || slug == models.UncategorizedSlug {
		return nil, ErrProtected
	}

	existing, err := s.Get(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	category := models.CategoryModel{
		Slug:  slug,
		Name:  strings.TrimSpace(name),
		Label: strings.TrimSpace(label),
		Color: color,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update edits a category's display fields. The uncategorized row is
// immutable.
func (s *Service) Update(slug, name, label, color string) (*models.CategoryModel, error) {
	if slug == models.UncategorizedSlug {
		return nil, ErrProtected
	}

	category, err := s.Get(slug)
	if err != nil || category == nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":  strings.TrimSpace(name),
		"label": strings.TrimSpace(label),
		"color": color,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category, reassigning its notes to uncategorized first
// so the foreign key stays satisfied.
func (s *Service) Delete(slug string) (bool, error) {
	if slug == models.UncategorizedSlug {
		return false, ErrProtected
	}

	category, err := s.Get(slug)
	if err != nil || category == nil {
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.NoteModel{}).
			Where("category_slug = ?", slug).
			Update("category_slug", models.UncategorizedSlug).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.CategoryModel{}, "slug = ?", slug).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
