package catalog

// DefaultPassingScore applies when an exam does not carry its own threshold.
const DefaultPassingScore = 50

type QuizResult struct {
	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
}

// GradeQuiz scores the answers (question index -> chosen option index)
// against the exam's questions. Unanswered questions count as wrong.
func GradeQuiz(exam Exam, questions []Question, answers map[int]int) QuizResult {
	res := QuizResult{Total: len(questions)}
	if res.Total == 0 {
		return res
	}

	for idx, q := range questions {
		if chosen, ok := answers[idx]; ok && chosen == q.CorrectAnswer {
			res.Correct++
		}
	}
	res.Percentage = (res.Correct*100 + res.Total/2) / res.Total // rounded

	passing := exam.PassingScore
	if passing <= 0 {
		passing = DefaultPassingScore
	}
	res.Passed = res.Percentage >= passing
	return res
}
