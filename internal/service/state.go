package service

// RouteState is the furthest step a route reached during one processing attempt.
type RouteState int

const (
	StateDiscovered RouteState = iota
	StateDetailFetched
	StateRendered
	StatePrinted
	StateAcknowledged
	StateRecorded
)

func (s RouteState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateDetailFetched:
		return "detail_fetched"
	case StateRendered:
		return "rendered"
	case StatePrinted:
		return "printed"
	case StateAcknowledged:
		return "acknowledged"
	case StateRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}
