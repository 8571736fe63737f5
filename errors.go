package rrule

import "fmt"

// Kind classifies a RuleError per spec.md §7.
type Kind int

const (
	// InvalidRule is raised for unknown FREQ, COUNT+UNTIL both set,
	// non-positive INTERVAL/COUNT, malformed BYDAY entries, out-of-range
	// BY-part integers, or an illegal FREQ/BY-part combination.
	InvalidRule Kind = iota
	// UnknownPart is raised when a rule string or mapping carries a key
	// outside the recognised set.
	UnknownPart
	// HorizonExceeded is raised only when YearlySkipUpperLimit is false and
	// a yearly scan crosses the horizon; otherwise the cursor silently
	// becomes exhausted.
	HorizonExceeded
	// LogicError is raised by FastForwardToEnd on an infinite rule.
	LogicError
)

func (k Kind) String() string {
	switch k {
	case InvalidRule:
		return "InvalidRule"
	case UnknownPart:
		return "UnknownPart"
	case HorizonExceeded:
		return "HorizonExceeded"
	case LogicError:
		return "LogicError"
	default:
		return "Unknown"
	}
}

// RuleError is the error type returned by every operation in this package.
type RuleError struct {
	Kind Kind
	Msg  string
}

func (e *RuleError) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is a RuleError of the same Kind, so callers can
// write errors.Is(err, rrule.ErrInvalidRule).
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for errors.Is comparisons; only Kind is compared.
var (
	ErrInvalidRule     = &RuleError{Kind: InvalidRule}
	ErrUnknownPart     = &RuleError{Kind: UnknownPart}
	ErrHorizonExceeded = &RuleError{Kind: HorizonExceeded}
	ErrLogicError      = &RuleError{Kind: LogicError}
)

func newError(kind Kind, format string, args ...interface{}) *RuleError {
	return &RuleError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
