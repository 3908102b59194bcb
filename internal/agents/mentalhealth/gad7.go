package mentalhealth

import "fmt"

// GAD7Questions are the seven items of the GAD-7 anxiety screening
// questionnaire, each answered on a 0-3 scale (not at all, several days,
// more than half the days, nearly every day).
var GAD7Questions = []string{
	"Feeling nervous, anxious, or on edge",
	"Not being able to stop or control worrying",
	"Worrying too much about different things",
	"Trouble relaxing",
	"Being so restless that it is hard to sit still",
	"Becoming easily annoyed or irritable",
	"Feeling afraid as if something awful might happen",
}

// Anxiety bands for the GAD-7 total score.
const (
	AnxietyMinimal  = "minimal"
	AnxietyMild     = "mild"
	AnxietyModerate = "moderate"
	AnxietySevere   = "severe"
)

// GAD7Result holds the total score and its interpretation band.
type GAD7Result struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
}

// ScoreGAD7 sums the seven item answers and maps the total to its band.
// It rejects answer slices of the wrong length or with out-of-range values.
func ScoreGAD7(answers []int) (GAD7Result, error) {
	if len(answers) != len(GAD7Questions) {
		return GAD7Result{}, fmt.Errorf("expected %d answers, got %d", len(GAD7Questions), len(answers))
	}
	total := 0
	for i, a := range answers {
		if a < 0 || a > 3 {
			return GAD7Result{}, fmt.Errorf("answer %d out of range: %d (want 0-3)", i+1, a)
		}
		total += a
	}
	return GAD7Result{Score: total, Band: anxietyBand(total)}, nil
}

func anxietyBand(score int) string {
	switch {
	case score <= 4:
		return AnxietyMinimal
	case score <= 9:
		return AnxietyMild
	case score <= 14:
		return AnxietyModerate
	default:
		return AnxietySevere
	}
}
