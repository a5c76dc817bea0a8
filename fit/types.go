package fit

import (
	"errors"
	"math"
)

// Sentinel errors for bounds handling and model selection.
var (
	// ErrBoundsLength indicates a bounds list not aligned one-to-one with
	// the parameter vector.
	ErrBoundsLength = errors.New("fit: bounds must align one-to-one with parameters")
	// ErrFactorLength indicates per-parameter factors not aligned with the
	// base vector.
	ErrFactorLength = errors.New("fit: factors must align one-to-one with base parameters")
	// ErrNoData indicates an empty regressor matrix or zero feature columns.
	ErrNoData = errors.New("fit: at least one observation and one feature required")
	// ErrFeatureShape indicates ragged feature rows or a target vector not
	// aligned with the rows.
	ErrFeatureShape = errors.New("fit: feature rows must share one width and align with targets")
	// ErrWeightLength indicates weights not aligned with the observations.
	ErrWeightLength = errors.New("fit: weights must align one-to-one with observations")
	// ErrCoeffLength indicates coefficients not aligned with the feature
	// columns.
	ErrCoeffLength = errors.New("fit: coefficients must align with feature columns")
	// ErrBadRidge indicates a negative ridge regularization strength.
	ErrBadRidge = errors.New("fit: ridge alpha must be non-negative")
	// ErrSingularFit indicates normal equations Cholesky could not factor:
	// collinear features without regularization.
	ErrSingularFit = errors.New("fit: normal equations are singular")
	// ErrNoCandidates indicates a selection over zero candidate models.
	ErrNoCandidates = errors.New("fit: at least one candidate model required")
)

// Rejected is the score of a parameter vector violating its bounds: a
// binary -Inf, not a distance, so a sampler discards the step outright.
var Rejected = math.Inf(-1)

// RSSFloor is the smallest residual sum of squares ScoreModel accepts;
// anything below is treated as this exact fit floor so the logarithm
// stays finite.
const RSSFloor = 1e-16

// Bound is one closed parameter interval.
type Bound struct {
	Min float64
	Max float64
}

// Candidate is one model proposal for SelectModel: a regressor matrix
// and the response vector it should reproduce.
type Candidate struct {
	// Labels annotate the feature columns for reporting; selection never
	// reads them.
	Labels []string
	// Features is the n×k regressor matrix, one row per observation.
	Features [][]float64
	// Targets is the length-n response vector.
	Targets []float64
}

// Selected is the winner of a SelectModel pass.
type Selected struct {
	// Index is the winning candidate's position in the input slice.
	Index int
	// Score is the winning modified-AICc value.
	Score float64
	// Coeffs is the winning fitted coefficient vector.
	Coeffs []float64
}
