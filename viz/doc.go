// Package viz renders point grids and refinement traces with gonum/plot.
//
// Two renderers cover the inspection needs of the pipeline:
//
//   - GridScatter plots one condition row of a calc.Grid as a per-phase
//     scatter of mole fraction against the evaluated property. Injected
//     reference points never appear, and phases are ordered by name so
//     the legend is stable. PhaseSeries exposes the grouped series for
//     callers that want their own styling.
//   - TraceLine plots a solver objective trace against iteration index.
//
// Both return a *plot.Plot ready for further decoration; WritePNG
// encodes any plot to a stream. Rendering uses the fonts embedded in
// gonum/plot, so no display or font installation is needed.
package viz
