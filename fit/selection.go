package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// checkShape validates one regression problem: n feature rows of a shared
// width k, n targets and (when present) n weights.
func checkShape(features [][]float64, targets, weights []float64) (n, k int, err error) {
	n = len(features)
	if n == 0 {
		return 0, 0, ErrNoData
	}
	k = len(features[0])
	if k == 0 {
		return 0, 0, ErrNoData
	}
	for _, row := range features {
		if len(row) != k {
			return 0, 0, ErrFeatureShape
		}
	}
	if len(targets) != n {
		return 0, 0, ErrFeatureShape
	}
	if weights != nil && len(weights) != n {
		return 0, 0, ErrWeightLength
	}

	return n, k, nil
}

// FitModel solves the weighted ridge regression
//
//	(AᵀWA + αI)·x = AᵀW·b
//
// for the coefficient vector x, where A is the n×k feature matrix, b the
// targets, W the diagonal of observation weights (nil means all ones) and
// α >= 0 the ridge strength. The intercept is not implicit; callers that
// want one add a constant feature column.
//
// Steps:
//  1. Validate shapes and the ridge strength.
//  2. Accumulate the normal equations row by row into a symmetric k×k
//     Gram matrix and a k-vector, then add α to the diagonal.
//  3. Factor with Cholesky and back-substitute.
//
// Errors: ErrNoData, ErrFeatureShape, ErrWeightLength, ErrBadRidge, and
// ErrSingularFit when the Gram matrix is not positive definite (collinear
// features with α = 0).
//
// Complexity: O(n·k²) accumulation plus O(k³) factorization.
func FitModel(features [][]float64, targets, weights []float64, ridgeAlpha float64) ([]float64, error) {
	// 1) Shapes first, then the regularization strength.
	n, k, err := checkShape(features, targets, weights)
	if err != nil {
		return nil, err
	}
	if ridgeAlpha < 0 {
		return nil, ErrBadRidge
	}

	// 2) Normal equations, one observation at a time. Only the upper
	//    triangle is written; SymDense mirrors it.
	var (
		gram = mat.NewSymDense(k, nil)
		rhs  = mat.NewVecDense(k, nil)
	)
	for r := 0; r < n; r++ {
		row, w := features[r], 1.0
		if weights != nil {
			w = weights[r]
		}
		for i := 0; i < k; i++ {
			rhs.SetVec(i, rhs.AtVec(i)+w*row[i]*targets[r])
			for j := i; j < k; j++ {
				gram.SetSym(i, j, gram.At(i, j)+w*row[i]*row[j])
			}
		}
	}
	for i := 0; i < k; i++ {
		gram.SetSym(i, i, gram.At(i, i)+ridgeAlpha)
	}

	// 3) Positive-definite solve; failure means collinearity.
	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return nil, ErrSingularFit
	}
	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, rhs); err != nil {
		return nil, ErrSingularFit
	}

	coeffs := make([]float64, k)
	for i := range coeffs {
		coeffs[i] = sol.AtVec(i)
	}

	return coeffs, nil
}

// ScoreModel grades a fitted model with a modified corrected Akaike
// information criterion
//
//	score = n·ln(rss/n) + 2·p·k + correction
//
// where rss is the weighted residual sum of squares Σ((A·x − b)·w)²,
// floored at RSSFloor so the logarithm stays finite, k the coefficient
// count and p the complexity penalty (aiccFactor; values <= 0 fall back
// to 1). The finite-sample correction is
//
//	(2p²k² + 2pk) / (n − pk − 1)          for pk < n−1,
//	(2p²k² + 2pk) · (−n + pk + 3)         otherwise,
//
// the second branch keeping the score finite and growing when the model
// carries as many effective parameters as observations. Lower is better.
//
// Errors: ErrNoData, ErrFeatureShape, ErrWeightLength, ErrCoeffLength.
//
// Complexity: O(n·k).
func ScoreModel(features [][]float64, targets, coeffs, weights []float64, aiccFactor float64) (float64, error) {
	// 1) Shapes, then the penalty factor default.
	n, k, err := checkShape(features, targets, weights)
	if err != nil {
		return 0, err
	}
	if len(coeffs) != k {
		return 0, ErrCoeffLength
	}
	p := aiccFactor
	if p <= 0 {
		p = 1
	}

	// 2) Weighted residual power. Weights multiply the residual before
	//    squaring, so they act on the same scale as the targets.
	rss := 0.0
	for r := 0; r < n; r++ {
		pred := 0.0
		for j, c := range coeffs {
			pred += features[r][j] * c
		}
		res := pred - targets[r]
		if weights != nil {
			res *= weights[r]
		}
		rss += res * res
	}
	if math.Abs(rss) < RSSFloor {
		rss = RSSFloor
	}

	// 3) Penalized likelihood plus the small-sample correction.
	var (
		fn  = float64(n)
		pk  = p * float64(k)
		aic = fn*math.Log(rss/fn) + 2*pk
		num = 2*pk*pk + 2*pk
	)
	if pk >= fn-1 {
		return aic + num*(pk-fn+3), nil
	}

	return aic + num/(fn-pk-1), nil
}

// SelectModel fits every candidate with FitModel, scores it with
// ScoreModel and returns the candidate with the lowest score. Ties keep
// the earliest candidate, so callers ordering proposals simplest-first
// get the most parsimonious winner for free. A -Inf score is a perfect
// fit and short-circuits the scan.
//
// Weights and aiccFactor apply uniformly to every candidate; candidates
// differ only in their feature matrices and targets.
//
// Errors: ErrNoCandidates for an empty slice, plus anything FitModel or
// ScoreModel reports for a malformed candidate.
func SelectModel(candidates []Candidate, weights []float64, ridgeAlpha, aiccFactor float64) (Selected, error) {
	if len(candidates) == 0 {
		return Selected{}, ErrNoCandidates
	}

	best := Selected{Index: -1, Score: math.Inf(1)}
	for i, cand := range candidates {
		// 1) Fit, then grade with the same weights.
		coeffs, err := FitModel(cand.Features, cand.Targets, weights, ridgeAlpha)
		if err != nil {
			return Selected{}, err
		}
		score, err := ScoreModel(cand.Features, cand.Targets, coeffs, weights, aiccFactor)
		if err != nil {
			return Selected{}, err
		}

		// 2) Perfect fits cannot be beaten; stop scanning.
		if math.IsInf(score, -1) {
			return Selected{Index: i, Score: score, Coeffs: coeffs}, nil
		}
		if score < best.Score {
			best = Selected{Index: i, Score: score, Coeffs: coeffs}
		}
	}

	return best, nil
}
