package models

// UncategorizedSlug is the protected fallback category. The row is seeded at
// startup and can never be edited or deleted.
const UncategorizedSlug = "uncategorized"

// CategoryModel is a global taxonomy slot; every note points at exactly one.
type CategoryModel struct {
	Base
	Slug     string      `json:"slug"     gorm:"uniqueIndex;not null"`
	Name     string      `json:"name"     gorm:"not null"`
	Label    string      `json:"label"    gorm:"not null"`
	Color    string      `json:"color"    gorm:"not null;default:'#475569'"`
	Keywords StringArray `json:"keywords" gorm:"type:longtext"`

	Notes []NoteModel `json:"notes,omitempty" gorm:"foreignKey:CategorySlug;references:Slug"`
}

func (CategoryModel) TableName() string { return "categories" }
