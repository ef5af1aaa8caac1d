// Package merit computes weighted admission aggregates from matriculation,
// intermediate and entry-test scores, and formats them into shareable result
// cards.
package merit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pakuni/go-pakuni/internal/config"
)

// Weights distribute the aggregate across the three score components.
// They must sum to 1.
type Weights struct {
	Matric float64
	Inter  float64
	Test   float64
}

// Profile is a named admission formula (one per test track).
type Profile struct {
	ID      string
	Name    string
	Weights Weights
}

// Profiles lists the built-in admission formulas, ordered as shown in the UI.
var Profiles = []Profile{
	{ID: "mdcat", Name: "Medical (MDCAT)", Weights: Weights{Matric: 0.10, Inter: 0.40, Test: 0.50}},
	{ID: "ecat", Name: "Engineering (ECAT)", Weights: Weights{Matric: 0.17, Inter: 0.50, Test: 0.33}},
	{ID: "net", Name: "NUST (NET)", Weights: Weights{Matric: 0.10, Inter: 0.15, Test: 0.75}},
	{ID: "nat", Name: "General (NTS NAT)", Weights: Weights{Matric: 0.10, Inter: 0.40, Test: 0.50}},
}

// Scores carries the obtained/total marks for each component.
type Scores struct {
	MatricObtained float64
	MatricTotal    float64
	InterObtained  float64
	InterTotal     float64
	TestObtained   float64
	TestTotal      float64
}

// Result is one computed aggregate.
type Result struct {
	Aggregate float64
	Profile   Profile
}

// weightTolerance absorbs float literal rounding in profile definitions.
const weightTolerance = 1e-9

// Compute validates the scores against the profile and returns the aggregate
// percentage. Each total must be positive and each obtained mark must lie in
// [0, total]; the aggregate of valid inputs always lies in [0, 100].
func Compute(s Scores, p Profile) (Result, error) {
	sum := p.Weights.Matric + p.Weights.Inter + p.Weights.Test
	if math.Abs(sum-1) > weightTolerance {
		return Result{}, errors.New(config.ErrWeightSum)
	}

	components := []struct{ obtained, total float64 }{
		{s.MatricObtained, s.MatricTotal},
		{s.InterObtained, s.InterTotal},
		{s.TestObtained, s.TestTotal},
	}
	for _, c := range components {
		if c.total <= 0 || c.obtained < 0 || c.obtained > c.total {
			return Result{}, errors.New(config.ErrScoreRange)
		}
	}

	aggregate := 100 * (p.Weights.Matric*(s.MatricObtained/s.MatricTotal) +
		p.Weights.Inter*(s.InterObtained/s.InterTotal) +
		p.Weights.Test*(s.TestObtained/s.TestTotal))

	return Result{Aggregate: aggregate, Profile: p}, nil
}

// ShareCard renders the celebratory result text students post on social media.
func (r Result) ShareCard(studentName string) string {
	var b strings.Builder

	name := strings.TrimSpace(studentName)
	if name == "" {
		name = config.FallbackTestName
	}

	fmt.Fprintf(&b, "🎓 %s\n", config.AppName)
	fmt.Fprintf(&b, "%s — %s\n", name, r.Profile.Name)
	fmt.Fprintf(&b, "Aggregate: %.2f%%\n", r.Aggregate)
	b.WriteString("#PakUni #Admissions")

	return b.String()
}
