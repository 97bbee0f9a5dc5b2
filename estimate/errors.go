package estimate

import "errors"

// Errors returned by the estimation pipeline.
var (
	ErrUnknownMethod      = errors.New("estimate: unknown method")
	ErrUnknownCorrelation = errors.New("estimate: unknown correlation type")
	ErrEmptyBinSpec       = errors.New("estimate: bin specification is empty")
	ErrMalformedBinSpec   = errors.New("estimate: malformed bin specification")
	ErrInvertedBin        = errors.New("estimate: bin lmin exceeds lmax")
	ErrOverlappingBins    = errors.New("estimate: bins overlap or are not ascending")
	ErrLengthMismatch     = errors.New("estimate: spectrum and bins have different lengths")
	ErrMissingInput       = errors.New("estimate: required input path is empty")
)
