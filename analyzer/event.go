package analyzer

// Event is an immutable record of a device-reported occurrence that
// doesn't fit a sensor stream — gear changes (FIT event numbers 42
// and 43) being the only kind any parser adapter currently emits.
type Event struct {
	TimestampMs uint64 `json:"timestamp_ms"`
	EventType   string `json:"event_type"`
	EventData   int64  `json:"event_data"`
}
