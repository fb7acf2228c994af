package models

// LabelModel is a user-scoped free-form tag attachable to notes and todos.
// Name is stored normalized (Title Case); NameLower backs the per-user
// case-insensitive uniqueness constraint.
type LabelModel struct {
	Base
	UserID    string `json:"-"     gorm:"not null;uniqueIndex:idx_labels_user_name,priority:1"`
	Name      string `json:"name"  gorm:"not null"`
	NameLower string `json:"-"     gorm:"not null;uniqueIndex:idx_labels_user_name,priority:2"`
	Color     string `json:"color" gorm:"not null;default:'#0ea5e9'"`

	Notes []NoteModel `json:"-" gorm:"many2many:note_labels;joinForeignKey:LabelID;joinReferences:NoteID;constraint:OnDelete:CASCADE"`
	Todos []TodoModel `json:"-" gorm:"many2many:todo_labels;joinForeignKey:LabelID;joinReferences:TodoID;constraint:OnDelete:CASCADE"`
}

func (LabelModel) TableName() string { return "labels" }
