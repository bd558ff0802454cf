package analyzer

import "github.com/google/uuid"

// Context owns one instance of each sensor analyzer plus a name and an
// ordered event log. It is the unit of a single ingested activity. The
// ID field gives a session's context list a stable handle addressable
// from the CLI and the WASM embedding surface.
type Context struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	Location    *LocationAnalyzer    `json:"location"`
	HeartRate   *HeartRateAnalyzer   `json:"heart_rate"`
	Cadence     *CadenceAnalyzer     `json:"cadence"`
	Temperature *TemperatureAnalyzer `json:"temperature"`
	Power       *PowerAnalyzer       `json:"power"`
	Swim        *SwimAnalyzer        `json:"swim"`

	Events []Event `json:"events"`
}

// NewContext creates an empty context ready to be filled by one
// parser pass.
func NewContext(name, activityType string) *Context {
	return &Context{
		ID:          uuid.New(),
		Name:        name,
		Location:    NewLocationAnalyzer(activityType),
		HeartRate:   &HeartRateAnalyzer{},
		Cadence:     &CadenceAnalyzer{},
		Temperature: &TemperatureAnalyzer{},
		Power:       NewPowerAnalyzer(),
		Swim:        &SwimAnalyzer{},
	}
}

// Finalize runs Analyze on every analyzer that defines one (location
// and power).
func (c *Context) Finalize() {
	c.Location.Analyze()
	c.Power.Analyze()
}

// PushEvent appends a device event (e.g. a gear change) to the log.
func (c *Context) PushEvent(e Event) {
	c.Events = append(c.Events, e)
}
