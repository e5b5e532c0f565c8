package game

import "fmt"

// Kind classifies a game error the way the public operations report it to
// callers: as a {kind, humanMessage} pair rather than a raw Go error chain.
type Kind int

const (
	KindValidation Kind = iota
	KindRouting
	KindState
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRouting:
		return "routing"
	case KindState:
		return "state"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every Table operation. ValidationError
// and StateError leave the table untouched; RoutingError means the token or
// table never resolved to anything. A ResourceError means the hand itself
// was aborted as a side effect of returning the error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Message)
}

func newErr(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func ErrInvalidName(reason string) *Error {
	return newErr(KindValidation, "InvalidName", "%s", reason)
}

func ErrInvalidBuyIn(amount, min, max int) *Error {
	return newErr(KindValidation, "InvalidBuyIn", "buy-in %d outside [%d, %d]", amount, min, max)
}

func ErrExceedsMaxBuyIn(amount, max int) *Error {
	return newErr(KindValidation, "ExceedsMaxBuyIn", "rebuy to %d exceeds max buy-in %d", amount, max)
}

var ErrTableFull = newErr(KindRouting, "TableFull", "no empty seats remain")

func ErrDuplicateName(name string) *Error {
	return newErr(KindRouting, "DuplicateName", "name %q already seated at this table", name)
}

var ErrUnknownPlayer = newErr(KindRouting, "UnknownPlayer", "token not seated at this table")

var ErrUnknownTable = newErr(KindRouting, "UnknownTable", "no table with that id")

var ErrNoActiveHand = newErr(KindState, "NoActiveHand", "no hand is in progress")

var ErrNotYourTurn = newErr(KindState, "NotYourTurn", "it is not this player's turn to act")

func ErrIllegalAction(reason string) *Error {
	return newErr(KindState, "IllegalAction", "%s", reason)
}

func ErrIllegalStateTransition(reason string) *Error {
	return newErr(KindState, "IllegalStateTransition", "%s", reason)
}

func ErrDeckExhausted() *Error {
	return newErr(KindResource, "DeckExhausted", "deck ran out of cards mid-hand")
}
