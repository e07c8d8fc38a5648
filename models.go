package mcqgenerator

import (
	"encoding/json"
	"fmt"
	"time"
)

// Label identifies one of the four answer choices of an MCQ.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels returns the four answer labels in display order.
func Labels() [4]Label {
	return [4]Label{LabelA, LabelB, LabelC, LabelD}
}

// ParseLabel validates a submitted answer label.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelA, LabelB, LabelC, LabelD:
		return Label(s), nil
	}
	return "", fmt.Errorf("invalid answer label: %q", s)
}

// Category is the coarse content classification of a generation request.
type Category string

const (
	CategoryGeneral    Category = "General"
	CategoryEducation  Category = "Education"
	CategoryTechnology Category = "Technology"
	CategoryBusiness   Category = "Business"
)

// Difficulty is derived from the word count of a question's source fragment.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Option is one labeled answer choice.
type Option struct {
	Label Label  `json:"label"`
	Text  string `json:"text"`
}

// OptionSet is the fixed four-choice answer block of an MCQ, always
// labeled A through D in order.
type OptionSet [4]Option

// NewOptionSet builds an option set from the four choice texts.
func NewOptionSet(a, b, c, d string) OptionSet {
	return OptionSet{
		{Label: LabelA, Text: a},
		{Label: LabelB, Text: b},
		{Label: LabelC, Text: c},
		{Label: LabelD, Text: d},
	}
}

// Get returns the choice text for a label.
func (s OptionSet) Get(l Label) (string, bool) {
	for _, opt := range s {
		if opt.Label == l {
			return opt.Text, true
		}
	}
	return "", false
}

// MarshalJSON encodes the set as a label-keyed object, A through D in
// order. This is the encoding stored in the options column and returned
// by the JSON export.
func (s OptionSet) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, opt := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(string(opt.Label))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON decodes a label-keyed object back into the fixed A-D slots.
func (s *OptionSet) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for i, l := range Labels() {
		text, ok := m[string(l)]
		if !ok {
			return fmt.Errorf("options missing label %s", l)
		}
		s[i] = Option{Label: l, Text: text}
	}
	return nil
}

// MCQ is a single generated multiple-choice question.
type MCQ struct {
	Question      string     `json:"question"`
	Options       OptionSet  `json:"options"`
	CorrectAnswer Label      `json:"correct_answer"`
	Explanation   string     `json:"explanation"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
}

// MCQSet is the question set produced by one generation request, held in
// the session together with its metadata.
type MCQSet struct {
	ID          string    `json:"id"`
	MCQs        []MCQ     `json:"mcqs"`
	Source      string    `json:"source"`
	TextPreview string    `json:"text_preview"`
	GeneratedAt time.Time `json:"generated_at"`
}

// TestResult is one persisted quiz score summary.
type TestResult struct {
	ID             int64     `json:"id"`
	TotalQuestions int       `json:"total_questions"`
	Score          int       `json:"score"`
	Percentage     float64   `json:"percentage"`
	CreatedDate    time.Time `json:"created_date"`
}

// QuestionResult is the graded outcome of a single question.
type QuestionResult struct {
	QuestionNumber int       `json:"question_number"`
	Question       string    `json:"question"`
	UserAnswer     string    `json:"user_answer"`
	CorrectAnswer  Label     `json:"correct_answer"`
	IsCorrect      bool      `json:"is_correct"`
	Explanation    string    `json:"explanation"`
	Options        OptionSet `json:"options"`
}

// TestOutcome is the full graded result of one quiz submission, held in
// the session until the next submission replaces it.
type TestOutcome struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}
