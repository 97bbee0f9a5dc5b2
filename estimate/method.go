package estimate

import (
	"fmt"
	"strings"
)

// Method selects how the decoupled spectrum is computed.
type Method int

const (
	// MethodFull computes and decouples the spectrum in one engine call.
	MethodFull Method = iota
	// MethodStep computes the coupled spectrum, then decouples it with the
	// workspace.
	MethodStep
)

// ParseMethod parses "full" or "step".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return MethodFull, nil
	case "step":
		return MethodStep, nil
	default:
		return 0, fmt.Errorf("%w: %q (want full or step)", ErrUnknownMethod, s)
	}
}

func (m Method) String() string {
	switch m {
	case MethodFull:
		return "full"
	case MethodStep:
		return "step"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

func (m Method) valid() bool {
	return m == MethodFull || m == MethodStep
}

// Correlation selects auto- or cross-correlation.
type Correlation int

const (
	// CorrAuto correlates the first field with itself.
	CorrAuto Correlation = iota
	// CorrCross correlates two distinct fields.
	CorrCross
)

// ParseCorrelation parses "auto" or "cross".
func ParseCorrelation(s string) (Correlation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return CorrAuto, nil
	case "cross":
		return CorrCross, nil
	default:
		return 0, fmt.Errorf("%w: %q (want auto or cross)", ErrUnknownCorrelation, s)
	}
}

func (c Correlation) String() string {
	switch c {
	case CorrAuto:
		return "auto"
	case CorrCross:
		return "cross"
	default:
		return fmt.Sprintf("Correlation(%d)", int(c))
	}
}

func (c Correlation) valid() bool {
	return c == CorrAuto || c == CorrCross
}
