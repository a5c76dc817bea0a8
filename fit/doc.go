// Package fit selects interaction-parameter models from candidate
// feature sets and polices fitted parameters against symmetric bounds.
//
// The package covers the regression half of a parameter-estimation loop:
//
//   - Bounds / BoundsScaled build closed intervals [p−|p|·f, p+|p|·f]
//     around reference parameters, and Score grades a proposal as 0
//     (inside everywhere) or Rejected (-Inf) the moment one parameter
//     escapes. Samplers add the score to a log-probability, so the -Inf
//     verdict kills the step without biasing anything inside the box.
//   - FitModel solves a weighted ridge regression through the normal
//     equations, ScoreModel grades the result with a modified corrected
//     Akaike information criterion, and SelectModel runs the fit+score
//     pass over a candidate ladder and keeps the lowest score. Ties keep
//     the earliest candidate, so a simplest-first ladder resolves to the
//     most parsimonious model.
//
// Weights multiply residuals before squaring in ScoreModel, and multiply
// squared terms in the FitModel normal equations. The two conventions
// differ on purpose: fitting weights observations linearly the way a
// diagonal W in (AᵀWA)x = AᵀWb does, while scoring treats the weight as
// part of the residual itself.
//
// Errors are sentinels (ErrNoData, ErrSingularFit, ...) and are reported,
// never panicked; a score of Rejected is a verdict, not an error.
package fit
