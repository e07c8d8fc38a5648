package mcqgenerator

// GradeTest scores a submission against the active question set. Answers
// are keyed by 1-based question number; a missing answer is the empty
// string, which never matches a correct label. Matching is exact, with
// no case normalization and no partial credit.
func GradeTest(mcqs []MCQ, answers map[int]string) TestOutcome {
	outcome := TestOutcome{
		Total:   len(mcqs),
		Results: make([]QuestionResult, 0, len(mcqs)),
	}

	for i, mcq := range mcqs {
		number := i + 1
		userAnswer := answers[number]
		isCorrect := userAnswer == string(mcq.CorrectAnswer)
		if isCorrect {
			outcome.Score++
		}
		outcome.Results = append(outcome.Results, QuestionResult{
			QuestionNumber: number,
			Question:       mcq.Question,
			UserAnswer:     userAnswer,
			CorrectAnswer:  mcq.CorrectAnswer,
			IsCorrect:      isCorrect,
			Explanation:    mcq.Explanation,
			Options:        mcq.Options,
		})
	}

	if outcome.Total > 0 {
		outcome.Percentage = float64(outcome.Score) / float64(outcome.Total) * 100
	}
	return outcome
}
