// Package errs implements the typed error taxonomy of spec §7, shared
// by every pipeline stage (C2 Resolver, C5 Simulator, C6 Metrics) so
// the engine boundary can surface a single consistent
// kind/stage/hint/error shape (spec §6.2). Kept as its own leaf package
// so catalog/scenario/simulator/metrics can all depend on it without
// importing the orchestrating engine package.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the typed error taxonomy of spec §7. Each kind
// carries a fixed Stage and a numeric response code (spec §6.2:
// error=0|1|2).
type Kind string

const (
	InvalidInput              Kind = "InvalidInput"
	UnknownCity                Kind = "UnknownCity"
	UnknownRoute               Kind = "UnknownRoute"
	NoRoutes                   Kind = "NoRoutes"
	NoDemand                   Kind = "NoDemand"
	NoFleet                    Kind = "NoFleet"
	UnresolvablePolylinePoint  Kind = "UnresolvablePolylinePoint"
	InternalInvariantViolated  Kind = "InternalInvariantViolated"
	ReportFailure              Kind = "ReportFailure"
)

// Stage is the pipeline phase at which an error surfaced (spec §6.2).
type Stage string

const (
	StageValidation       Stage = "validation"
	StageDataPreparation  Stage = "data_preparation"
	StageCalculation      Stage = "calculation"
	StageReportGeneration Stage = "report_generation"
)

var stageOf = map[Kind]Stage{
	InvalidInput:              StageValidation,
	UnknownCity:               StageValidation,
	UnknownRoute:              StageDataPreparation,
	NoRoutes:                  StageDataPreparation,
	NoDemand:                  StageDataPreparation,
	NoFleet:                   StageCalculation,
	UnresolvablePolylinePoint: StageCalculation,
	InternalInvariantViolated: StageCalculation,
	ReportFailure:             StageReportGeneration,
}

var responseCodeOf = map[Stage]int{
	StageValidation:       1,
	StageDataPreparation:  1,
	StageCalculation:      2,
	StageReportGeneration: 2,
}

var defaultHint = map[Kind]string{
	NoFleet: "specify vehicle type and fleet size for each route",
}

// SimError is the typed error every stage surfaces to the engine
// boundary. It wraps an underlying cause with github.com/pkg/errors so
// a stack trace survives for diagnostics, the way tidbyt-gtfs's parse
// package wraps csv/parsing failures with %w.
type SimError struct {
	Kind  Kind
	Stage Stage
	Hint  string
	cause error
}

func (e *SimError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return string(e.Kind)
}

func (e *SimError) Unwrap() error { return e.cause }

// Code returns the spec §6.2 response code (0|1|2) for this error.
func (e *SimError) Code() int { return responseCodeOf[e.Stage] }

// New builds a SimError of the given kind. If cause is non-nil it is
// wrapped; otherwise format/args (if given) become the cause message.
// The stage and default hint are derived from kind.
func New(kind Kind, cause error, format string, args ...any) *SimError {
	var wrapped error
	switch {
	case cause != nil:
		wrapped = errors.Wrap(cause, string(kind))
	case format != "":
		wrapped = errors.New(fmt.Sprintf(format, args...))
	}
	return &SimError{
		Kind:  kind,
		Stage: stageOf[kind],
		Hint:  defaultHint[kind],
		cause: wrapped,
	}
}

// WithHint overrides the default hint text.
func (e *SimError) WithHint(hint string) *SimError {
	e.Hint = hint
	return e
}

// IsKind reports whether err is a *SimError of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *SimError
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}
