package models

import "gorm.io/gorm"

const (
	CourseStatusDraft       = "draft"
	CourseStatusUnderReview = "under_review"
	CourseStatusPublished   = "published"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type Course struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Category     string
	Level        string `gorm:"default:beginner"`
	Status       string `gorm:"default:draft"`
	AuthorID     uint
	StudentCount int
	// The whole module/lesson/content tree is stored as one JSON aggregate
	// owned by the course row; nothing outside the course references its
	// nodes, so there is no need for separate tables.
	Content CourseContent `gorm:"serializer:json"`
}

type CourseContent struct {
	Modules []CourseModule `json:"modules"`
}

type CourseModule struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Lessons   []CourseLesson `json:"lessons"`
	Questions []QuizQuestion `json:"questions,omitempty"` // module-level quiz
}

type CourseLesson struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}

const (
	BlockText  = "text"
	BlockImage = "image"
	BlockVideo = "video"
	BlockQuiz  = "quiz"
)

// ContentBlock is a tagged union over text/image/video/quiz; only the fields
// matching Type are meaningful.
type ContentBlock struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	URL       string         `json:"url,omitempty"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Options  []QuizOption `json:"options"`
}

type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// TotalLessons counts lessons across all modules; the course document is the
// authoritative source for lesson counts used by progress rollups.
func (c CourseContent) TotalLessons() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

func (c CourseContent) FindModule(moduleID string) *CourseModule {
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			return &c.Modules[i]
		}
	}
	return nil
}
