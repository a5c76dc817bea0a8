package viz

import "errors"

// Sentinel errors for malformed rendering requests.
var (
	// ErrNilGrid indicates a nil grid handed to a grid renderer.
	ErrNilGrid = errors.New("viz: nil grid")
	// ErrNilPlot indicates a nil plot handed to an encoder.
	ErrNilPlot = errors.New("viz: nil plot")
	// ErrUnknownComponent indicates a component name absent from the
	// grid's component universe.
	ErrUnknownComponent = errors.New("viz: component not on the grid")
	// ErrCondRange indicates a condition row index outside the grid.
	ErrCondRange = errors.New("viz: condition row out of range")
	// ErrEmptyTrace indicates a refinement trace with no entries.
	ErrEmptyTrace = errors.New("viz: empty trace")
	// ErrBadSize indicates a non-positive canvas dimension.
	ErrBadSize = errors.New("viz: canvas dimensions must be positive")
)
