package models

// QuestionDraft is a question as submitted by a client. Order is accepted for
// compatibility but always replaced by the question's position.
type QuestionDraft struct {
	Type     QuestionType `json:"type" yaml:"type" validate:"required,question_type"`
	Question string       `json:"question" yaml:"question" validate:"required,not_blank"`
	Options  []string     `json:"options" yaml:"options"`
	Answers  []string     `json:"answers" yaml:"answers"`
	Order    *int         `json:"order,omitempty" yaml:"-"`
}

type CreateQuizRequest struct {
	Title     string          `json:"title" yaml:"title" validate:"required,not_blank"`
	Questions []QuestionDraft `json:"questions" yaml:"questions" validate:"dive"`
}

// Normalize returns the draft in its stored shape: options are kept only for
// checkbox questions and nil slices become empty ones.
func (d QuestionDraft) Normalize() QuestionDraft {
	out := QuestionDraft{
		Type:     d.Type,
		Question: d.Question,
		Options:  []string{},
		Answers:  append([]string{}, d.Answers...),
	}
	if d.Type == QuestionCheckbox {
		out.Options = append(out.Options, d.Options...)
	}
	return out
}

// ToQuiz builds the quiz entity for persistence, numbering questions by position.
func (r *CreateQuizRequest) ToQuiz() *Quiz {
	quiz := &Quiz{
		Title:     r.Title,
		Questions: make([]Question, 0, len(r.Questions)),
	}
	for i, draft := range r.Questions {
		n := draft.Normalize()
		quiz.Questions = append(quiz.Questions, Question{
			Type:     n.Type,
			Question: n.Question,
			Options:  n.Options,
			Answers:  n.Answers,
			Order:    i,
		})
	}
	return quiz
}
