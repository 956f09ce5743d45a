package models

// Course difficulty levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Attachment types.
const (
	AttachmentDocument = "document"
	AttachmentVideo    = "video"
	AttachmentOther    = "other"
)

type Course struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Image        string       `json:"image"`
	Instructor   string       `json:"instructor"`
	InstructorID string       `json:"instructorId,omitempty"`
	Duration     string       `json:"duration"`
	Level        string       `json:"level"`
	Category     string       `json:"category"`
	Price        float64      `json:"price"`
	IsFree       bool         `json:"isFree,omitempty"`
	IsPurchased  bool         `json:"isPurchased,omitempty"` // derived, only set on projections
	Content      []Lesson     `json:"content"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

// Lesson is owned exclusively by its parent course. IDs are derived from the
// course ID plus the lesson's ordinal.
type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description"`
}

type Attachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// NewCourse carries the instructor-supplied fields of a course being created.
// ID, instructor identity and content are stamped by the catalog store.
type NewCourse struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Level       string       `json:"level"`
	Price       float64      `json:"price"`
	IsFree      bool         `json:"isFree,omitempty"`
	Duration    string       `json:"duration"`
	Image       string       `json:"image"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
