// Package content holds the in-memory course tree editor. Every operation is
// an immutable update: the input tree is never mutated, the affected branch
// path is reconstructed and everything else is shared. Operations addressed
// at an id that does not exist return the input tree unchanged.
package content

import (
	"github.com/google/uuid"

	"learnhub/backend/models"
)

// NewID mints an id for a tree node.
func NewID() string {
	return uuid.NewString()
}

func cloneModules(t models.CourseContent) []models.CourseModule {
	out := make([]models.CourseModule, len(t.Modules))
	copy(out, t.Modules)
	return out
}

// updateModule rebuilds the tree with fn applied to a copy of the module with
// the given id. The bool reports whether the module was found.
func updateModule(t models.CourseContent, moduleID string, fn func(*models.CourseModule)) (models.CourseContent, bool) {
	for i, m := range t.Modules {
		if m.ID != moduleID {
			continue
		}
		modules := cloneModules(t)
		mod := m
		fn(&mod)
		modules[i] = mod
		return models.CourseContent{Modules: modules}, true
	}
	return t, false
}

func updateLesson(t models.CourseContent, moduleID, lessonID string, fn func(*models.CourseLesson)) (models.CourseContent, bool) {
	found := false
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		for i, l := range m.Lessons {
			if l.ID != lessonID {
				continue
			}
			lessons := make([]models.CourseLesson, len(m.Lessons))
			copy(lessons, m.Lessons)
			lesson := l
			fn(&lesson)
			lessons[i] = lesson
			m.Lessons = lessons
			found = true
			return
		}
	})
	if !found {
		return t, false
	}
	return out, true
}

func updateBlock(t models.CourseContent, moduleID, lessonID, blockID string, fn func(*models.ContentBlock)) (models.CourseContent, bool) {
	found := false
	out, _ := updateLesson(t, moduleID, lessonID, func(l *models.CourseLesson) {
		for i, b := range l.Blocks {
			if b.ID != blockID {
				continue
			}
			blocks := make([]models.ContentBlock, len(l.Blocks))
			copy(blocks, l.Blocks)
			block := b
			fn(&block)
			blocks[i] = block
			l.Blocks = blocks
			found = true
			return
		}
	})
	if !found {
		return t, false
	}
	return out, true
}

// modules

func AddModule(t models.CourseContent, m models.CourseModule) models.CourseContent {
	if m.ID == "" {
		m.ID = NewID()
	}
	return models.CourseContent{Modules: append(cloneModules(t), m)}
}

func RemoveModule(t models.CourseContent, moduleID string) models.CourseContent {
	for i, m := range t.Modules {
		if m.ID != moduleID {
			continue
		}
		modules := make([]models.CourseModule, 0, len(t.Modules)-1)
		modules = append(modules, t.Modules[:i]...)
		modules = append(modules, t.Modules[i+1:]...)
		return models.CourseContent{Modules: modules}
	}
	return t
}

func RenameModule(t models.CourseContent, moduleID, title string) models.CourseContent {
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) { m.Title = title })
	return out
}

// lessons

func AddLesson(t models.CourseContent, moduleID string, l models.CourseLesson) models.CourseContent {
	if l.ID == "" {
		l.ID = NewID()
	}
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		lessons := make([]models.CourseLesson, len(m.Lessons), len(m.Lessons)+1)
		copy(lessons, m.Lessons)
		m.Lessons = append(lessons, l)
	})
	return out
}

func RemoveLesson(t models.CourseContent, moduleID, lessonID string) models.CourseContent {
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		for i, l := range m.Lessons {
			if l.ID != lessonID {
				continue
			}
			lessons := make([]models.CourseLesson, 0, len(m.Lessons)-1)
			lessons = append(lessons, m.Lessons[:i]...)
			lessons = append(lessons, m.Lessons[i+1:]...)
			m.Lessons = lessons
			return
		}
	})
	return out
}

func RenameLesson(t models.CourseContent, moduleID, lessonID, title string) models.CourseContent {
	out, _ := updateLesson(t, moduleID, lessonID, func(l *models.CourseLesson) { l.Title = title })
	return out
}

// content blocks

func AddBlock(t models.CourseContent, moduleID, lessonID string, b models.ContentBlock) models.CourseContent {
	if b.ID == "" {
		b.ID = NewID()
	}
	out, _ := updateLesson(t, moduleID, lessonID, func(l *models.CourseLesson) {
		blocks := make([]models.ContentBlock, len(l.Blocks), len(l.Blocks)+1)
		copy(blocks, l.Blocks)
		l.Blocks = append(blocks, b)
	})
	return out
}

func RemoveBlock(t models.CourseContent, moduleID, lessonID, blockID string) models.CourseContent {
	out, _ := updateLesson(t, moduleID, lessonID, func(l *models.CourseLesson) {
		for i, b := range l.Blocks {
			if b.ID != blockID {
				continue
			}
			blocks := make([]models.ContentBlock, 0, len(l.Blocks)-1)
			blocks = append(blocks, l.Blocks[:i]...)
			blocks = append(blocks, l.Blocks[i+1:]...)
			l.Blocks = blocks
			return
		}
	})
	return out
}

// UpdateBlock replaces the block with b.ID wholesale, keeping its position.
func UpdateBlock(t models.CourseContent, moduleID, lessonID string, b models.ContentBlock) models.CourseContent {
	out, _ := updateBlock(t, moduleID, lessonID, b.ID, func(dst *models.ContentBlock) { *dst = b })
	return out
}

// quiz questions (block-level)

func AddQuestion(t models.CourseContent, moduleID, lessonID, blockID string, q models.QuizQuestion) models.CourseContent {
	if q.ID == "" {
		q.ID = NewID()
	}
	out, _ := updateBlock(t, moduleID, lessonID, blockID, func(b *models.ContentBlock) {
		questions := make([]models.QuizQuestion, len(b.Questions), len(b.Questions)+1)
		copy(questions, b.Questions)
		b.Questions = append(questions, q)
	})
	return out
}

func RemoveQuestion(t models.CourseContent, moduleID, lessonID, blockID, questionID string) models.CourseContent {
	out, _ := updateBlock(t, moduleID, lessonID, blockID, func(b *models.ContentBlock) {
		b.Questions = removeQuestionByID(b.Questions, questionID)
	})
	return out
}

func UpdateQuestion(t models.CourseContent, moduleID, lessonID, blockID string, q models.QuizQuestion) models.CourseContent {
	out, _ := updateBlock(t, moduleID, lessonID, blockID, func(b *models.ContentBlock) {
		b.Questions = replaceQuestionByID(b.Questions, q)
	})
	return out
}

// quiz questions (module-level test)

func AddModuleQuestion(t models.CourseContent, moduleID string, q models.QuizQuestion) models.CourseContent {
	if q.ID == "" {
		q.ID = NewID()
	}
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		questions := make([]models.QuizQuestion, len(m.Questions), len(m.Questions)+1)
		copy(questions, m.Questions)
		m.Questions = append(questions, q)
	})
	return out
}

func RemoveModuleQuestion(t models.CourseContent, moduleID, questionID string) models.CourseContent {
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		m.Questions = removeQuestionByID(m.Questions, questionID)
	})
	return out
}

func UpdateModuleQuestion(t models.CourseContent, moduleID string, q models.QuizQuestion) models.CourseContent {
	out, _ := updateModule(t, moduleID, func(m *models.CourseModule) {
		m.Questions = replaceQuestionByID(m.Questions, q)
	})
	return out
}

// options

func AddOption(t models.CourseContent, moduleID, lessonID, blockID, questionID string, o models.QuizOption) models.CourseContent {
	if o.ID == "" {
		o.ID = NewID()
	}
	return mapQuestion(t, moduleID, lessonID, blockID, questionID, func(q *models.QuizQuestion) {
		options := make([]models.QuizOption, len(q.Options), len(q.Options)+1)
		copy(options, q.Options)
		q.Options = append(options, o)
	})
}

func RemoveOption(t models.CourseContent, moduleID, lessonID, blockID, questionID, optionID string) models.CourseContent {
	return mapQuestion(t, moduleID, lessonID, blockID, questionID, func(q *models.QuizQuestion) {
		for i, o := range q.Options {
			if o.ID != optionID {
				continue
			}
			options := make([]models.QuizOption, 0, len(q.Options)-1)
			options = append(options, q.Options[:i]...)
			options = append(options, q.Options[i+1:]...)
			q.Options = options
			return
		}
	})
}

func UpdateOption(t models.CourseContent, moduleID, lessonID, blockID, questionID string, o models.QuizOption) models.CourseContent {
	return mapQuestion(t, moduleID, lessonID, blockID, questionID, func(q *models.QuizQuestion) {
		for i, existing := range q.Options {
			if existing.ID != o.ID {
				continue
			}
			options := make([]models.QuizOption, len(q.Options))
			copy(options, q.Options)
			options[i] = o
			q.Options = options
			return
		}
	})
}

func mapQuestion(t models.CourseContent, moduleID, lessonID, blockID, questionID string, fn func(*models.QuizQuestion)) models.CourseContent {
	out, _ := updateBlock(t, moduleID, lessonID, blockID, func(b *models.ContentBlock) {
		for i, q := range b.Questions {
			if q.ID != questionID {
				continue
			}
			questions := make([]models.QuizQuestion, len(b.Questions))
			copy(questions, b.Questions)
			question := q
			fn(&question)
			questions[i] = question
			b.Questions = questions
			return
		}
	})
	return out
}

func removeQuestionByID(questions []models.QuizQuestion, questionID string) []models.QuizQuestion {
	for i, q := range questions {
		if q.ID != questionID {
			continue
		}
		out := make([]models.QuizQuestion, 0, len(questions)-1)
		out = append(out, questions[:i]...)
		out = append(out, questions[i+1:]...)
		return out
	}
	return questions
}

func replaceQuestionByID(questions []models.QuizQuestion, q models.QuizQuestion) []models.QuizQuestion {
	for i, existing := range questions {
		if existing.ID != q.ID {
			continue
		}
		out := make([]models.QuizQuestion, len(questions))
		copy(out, questions)
		out[i] = q
		return out
	}
	return questions
}
