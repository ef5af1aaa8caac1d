package merit_test

import (
	"testing"

	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/merit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScores() merit.Scores {
	return merit.Scores{
		MatricObtained: 1000, MatricTotal: 1100,
		InterObtained: 900, InterTotal: 1100,
		TestObtained: 160, TestTotal: 200,
	}
}

// TestCompute_KnownAggregate verifies the weighted formula against a hand
// computed value.
func TestCompute_KnownAggregate(t *testing.T) {
	profile := merit.Profile{
		ID:      "mdcat",
		Name:    "Medical (MDCAT)",
		Weights: merit.Weights{Matric: 0.10, Inter: 0.40, Test: 0.50},
	}

	res, err := merit.Compute(validScores(), profile)
	require.NoError(t, err)

	// 0.10*(1000/1100) + 0.40*(900/1100) + 0.50*(160/200) = 0.818...
	assert.InDelta(t, 81.8182, res.Aggregate, 0.001)
	assert.Equal(t, profile, res.Profile)
}

// TestCompute_Bounds ensures valid inputs always land in [0, 100].
func TestCompute_Bounds(t *testing.T) {
	for _, p := range merit.Profiles {
		t.Run(p.ID, func(t *testing.T) {
			full := merit.Scores{
				MatricObtained: 1100, MatricTotal: 1100,
				InterObtained: 1100, InterTotal: 1100,
				TestObtained: 200, TestTotal: 200,
			}
			res, err := merit.Compute(full, p)
			require.NoError(t, err)
			assert.InDelta(t, 100, res.Aggregate, 1e-9)

			zero := merit.Scores{
				MatricTotal: 1100, InterTotal: 1100, TestTotal: 200,
			}
			res, err = merit.Compute(zero, p)
			require.NoError(t, err)
			assert.Zero(t, res.Aggregate)
		})
	}
}

// TestCompute_RejectsBadScores covers each validation failure.
func TestCompute_RejectsBadScores(t *testing.T) {
	profile := merit.Profiles[0]

	tests := []struct {
		name   string
		mutate func(*merit.Scores)
	}{
		{"ZeroTotal", func(s *merit.Scores) { s.MatricTotal = 0 }},
		{"NegativeTotal", func(s *merit.Scores) { s.InterTotal = -1 }},
		{"NegativeObtained", func(s *merit.Scores) { s.TestObtained = -5 }},
		{"ObtainedExceedsTotal", func(s *merit.Scores) { s.TestObtained = s.TestTotal + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScores()
			tt.mutate(&s)

			_, err := merit.Compute(s, profile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrScoreRange)
		})
	}
}

// TestCompute_RejectsBadWeights guards against malformed custom profiles.
func TestCompute_RejectsBadWeights(t *testing.T) {
	bad := merit.Profile{
		ID:      "custom",
		Weights: merit.Weights{Matric: 0.5, Inter: 0.5, Test: 0.5},
	}

	_, err := merit.Compute(validScores(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrWeightSum)
}

// TestBuiltinProfiles_WeightsSumToOne keeps the shipped formulas coherent.
func TestBuiltinProfiles_WeightsSumToOne(t *testing.T) {
	for _, p := range merit.Profiles {
		t.Run(p.ID, func(t *testing.T) {
			sum := p.Weights.Matric + p.Weights.Inter + p.Weights.Test
			assert.InDelta(t, 1.0, sum, 1e-9)
			assert.NotEmpty(t, p.Name)
		})
	}
}

// TestShareCard verifies the rendered result text.
func TestShareCard(t *testing.T) {
	res := merit.Result{
		Aggregate: 81.8182,
		Profile:   merit.Profiles[0],
	}

	card := res.ShareCard("Ayesha")
	assert.Contains(t, card, config.AppName)
	assert.Contains(t, card, "Ayesha")
	assert.Contains(t, card, "81.82")
	assert.Contains(t, card, merit.Profiles[0].Name)

	// Blank names fall back to a placeholder instead of an empty line.
	card = res.ShareCard("   ")
	assert.Contains(t, card, config.FallbackTestName)
}
