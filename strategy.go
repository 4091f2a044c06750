package timeoutpolicy

// Strategy selects how the deadline is enforced.
type Strategy int

const (
	// Optimistic passes a composite cancellation signal into the operation
	// and trusts it to stop promptly.
	Optimistic Strategy = iota
	// Pessimistic races the operation, run on a detached goroutine, against
	// a timer, independent of the operation's cooperation.
	Pessimistic
)

func (s Strategy) String() string {
	switch s {
	case Optimistic:
		return "OPTIMISTIC"
	case Pessimistic:
		return "PESSIMISTIC"
	default:
		return "UNKNOWN"
	}
}

func (s Strategy) valid() bool {
	return s == Optimistic || s == Pessimistic
}
