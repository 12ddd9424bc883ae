package content

import (
	"fmt"

	"learnhub/backend/models"
)

// Validate checks a course tree before it is saved. The edit operations stay
// permissive; constraints are only enforced at the save boundary. Returned
// map keys are node paths, values are user-facing messages. An empty map
// means the tree is valid.
func Validate(t models.CourseContent) map[string]string {
	problems := make(map[string]string)

	for mi, m := range t.Modules {
		if m.Title == "" {
			problems[fmt.Sprintf("modules[%d]", mi)] = "Module title is required"
		}
		for _, q := range m.Questions {
			checkQuestion(problems, fmt.Sprintf("modules[%d].questions", mi), q)
		}
		for li, l := range m.Lessons {
			if l.Title == "" {
				problems[fmt.Sprintf("modules[%d].lessons[%d]", mi, li)] = "Lesson title is required"
			}
			for bi, b := range l.Blocks {
				path := fmt.Sprintf("modules[%d].lessons[%d].blocks[%d]", mi, li, bi)
				checkBlock(problems, path, b)
			}
		}
	}
	return problems
}

func checkBlock(problems map[string]string, path string, b models.ContentBlock) {
	switch b.Type {
	case models.BlockText:
		if b.Text == "" {
			problems[path] = "Text block has no body"
		}
	case models.BlockImage, models.BlockVideo:
		if b.URL == "" {
			problems[path] = "Media block has no URL"
		}
	case models.BlockQuiz:
		if len(b.Questions) == 0 {
			problems[path] = "Quiz block has no questions"
		}
		for _, q := range b.Questions {
			checkQuestion(problems, path, q)
		}
	default:
		problems[path] = "Unknown block type: " + b.Type
	}
}

func checkQuestion(problems map[string]string, path string, q models.QuizQuestion) {
	if q.Question == "" {
		problems[path+".question("+q.ID+")"] = "Question text is required"
		return
	}
	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		problems[path+".question("+q.ID+")"] = "Question needs at least one correct option"
	}
}
