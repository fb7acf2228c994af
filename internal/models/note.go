package models

// NoteModel is one captured note entry. The text is immutable once
// categorized; only the category assignment may change afterwards.
type NoteModel struct {
	Base
	UserID       string      `json:"-"          gorm:"index;not null"`
	Text         string      `json:"text"       gorm:"type:longtext"`
	TextHTML     string      `json:"text_html"  gorm:"type:longtext"`
	ImageData    string      `json:"image_data" gorm:"type:longtext"`
	CategorySlug string      `json:"category_slug" gorm:"index;not null;default:'uncategorized'"`
	Confidence   float64     `json:"confidence" gorm:"default:0"`
	Tags         StringArray `json:"tags"       gorm:"type:longtext"`
	Source       string      `json:"source"     gorm:"default:'rules'"` // rules | ai

	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategorySlug;references:Slug"`
	Labels   []LabelModel   `json:"labels,omitempty"   gorm:"many2many:note_labels;joinForeignKey:NoteID;joinReferences:LabelID;constraint:OnDelete:CASCADE"`
}

func (NoteModel) TableName() string { return "notes" }
