package note

import "strings"

const (
	maxTextLength     = 4000
	maxTextHTMLLength = 20000
	maxImageDataBytes = 3_000_000
)

type CreateNoteDTO struct {
	Text      string `json:"text"`
	TextHTML  string `json:"textHtml"`
	ImageData string `json:"imageData"`
}

// Validate enforces the capture limits. Either text or an image must be
// present.
func (d *CreateNoteDTO) Validate() string {
	if len(d.Text) > maxTextLength {
		return "Text is too long"
	}
	if len(d.TextHTML) > maxTextHTMLLength {
		return "Formatted text is too long"
	}
	if len(d.ImageData) > maxImageDataBytes {
		return "Image is too large"
	}
	if strings.TrimSpace(d.Text) == "" && d.ImageData == "" {
		return "Either text or an image is required"
	}
	return ""
}

type UpdateNoteDTO struct {
	Category string `json:"category" binding:"required"`
}

type AddLabelDTO struct {
	Name string `json:"name" binding:"required,min=1,max=40"`
}
