package cef

import (
	"errors"
)

// Sentinel errors for model construction and evaluation.
var (
	// ErrNilPhase indicates a nil phase handed to NewRecord.
	ErrNilPhase = errors.New("cef: phase must be non-nil")
	// ErrNoTemperature indicates a state-variable list without the
	// temperature variable; the ideal-mixing term cannot be formed.
	ErrNoTemperature = errors.New("cef: state variables must include T")
	// ErrBadRKOrder indicates a negative Redlich-Kister expansion order.
	ErrBadRKOrder = errors.New("cef: Redlich-Kister order must be non-negative")
	// ErrParamCount indicates a parameter vector whose length does not
	// match the phase layout; see ParamCount.
	ErrParamCount = errors.New("cef: parameter vector length must match the phase layout")
	// ErrUnknownOutput indicates a property name the model cannot produce.
	ErrUnknownOutput = errors.New("cef: unknown output")
	// ErrStateVarLength indicates an evaluation vector whose length differs
	// from the state-variable list declared at construction.
	ErrStateVarLength = errors.New("cef: state-variable vector length must match construction")
)

// GasConstant is the molar gas constant R in J/(mol·K), CODATA 2018.
const GasConstant = 8.314462618
