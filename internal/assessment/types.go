package assessment

// Feedback is the verdict on a learner's summary.
type Feedback struct {
	CorrectPoints []string `json:"correct_points"`
	MissingPoints []string `json:"missing_points"`
}

// Canonical verdicts.
var (
	excellentCorrect = []string{
		"Excellent understanding! You've captured all the key points accurately.",
		"Your summary demonstrates thorough comprehension of the material.",
	}
	convergedCorrect = []string{
		"Excellent work! You've successfully addressed all the previous points.",
		"Your understanding is now complete and accurate.",
	}
	progressCorrect = []string{
		"Good progress! You've improved on some points.",
		"Keep working on the remaining areas.",
	}
)

// DegradedMessage is the single missing point reported when a summary could
// not be analyzed.
const DegradedMessage = "Unable to analyze the summary. The system encountered an error. Please try submitting your summary again."

// Excellent returns the verdict for a first summary that needs no work.
func Excellent() Feedback {
	return Feedback{CorrectPoints: clone(excellentCorrect), MissingPoints: []string{}}
}

// Complete returns the verdict for a resubmission that closed every point.
func Complete() Feedback {
	return Feedback{CorrectPoints: clone(convergedCorrect), MissingPoints: []string{}}
}

// Degraded returns the verdict used when analysis failed.
func Degraded() Feedback {
	return Feedback{CorrectPoints: []string{}, MissingPoints: []string{DegradedMessage}}
}

// Converged reports whether f leaves nothing for the learner to fix.
func Converged(f Feedback) bool {
	return len(f.MissingPoints) == 0
}

// IsDegraded reports whether f is the analysis-failure verdict.
func IsDegraded(f Feedback) bool {
	return len(f.CorrectPoints) == 0 && len(f.MissingPoints) == 1 && f.MissingPoints[0] == DegradedMessage
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
