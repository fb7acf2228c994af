package models

// TodoModel is an actionable item, either extracted from a note or entered
// directly. SourceNoteID is a soft reference: deleting the note keeps the todo.
type TodoModel struct {
	Base
	UserID       string  `json:"-"              gorm:"index;not null"`
	Content      string  `json:"content"        gorm:"not null"`
	IsDone       bool    `json:"is_done"        gorm:"default:false;index"`
	SourceNoteID *string `json:"source_note_id" gorm:"index"`

	Labels []LabelModel `json:"labels,omitempty" gorm:"many2many:todo_labels;joinForeignKey:TodoID;joinReferences:LabelID;constraint:OnDelete:CASCADE"`
}

func (TodoModel) TableName() string { return "todos" }
