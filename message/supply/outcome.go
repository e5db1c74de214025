package supply

// Outcome is the explicit result of one handler invocation. Processed and
// Rejected both acknowledge the delivery; Rejected additionally logs the
// cause and is never retried. Retry surfaces the error to the router so
// the broker redelivers. The default handlers never return Retry: the
// protocol is at-most-once, a failed message is dropped rather than
// looped.
type Outcome int

const (
	Processed Outcome = iota
	Rejected
	Retry
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Rejected:
		return "rejected"
	case Retry:
		return "retry"
	default:
		return "unknown"
	}
}
