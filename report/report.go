// Package report projects a finalized analyzer.Context into a flat
// JSON report.
package report

import "github.com/trailmetrics/activity-analyzer/analyzer"

// Report mirrors the host-facing report's keys field-for-field: the
// per-distance bests are nested under "Bests", while the four
// per-duration power bests are flat top-level keys.
type Report struct {
	StartTimeMs           uint64             `json:"Start Time (ms)"`
	EndTimeMs             uint64             `json:"End Time (ms)"`
	ElapsedTime           float64            `json:"Elapsed Time"`
	TotalDistance         float64            `json:"Total Distance"`
	TotalVerticalDistance float64            `json:"Total Vertical Distance"`
	AverageSpeed          float64            `json:"Average Speed"`
	Bests                 map[string]uint64  `json:"Bests"`
	MileSplits            []uint64           `json:"Mile Splits"`
	KMSplits              []uint64           `json:"KM Splits"`
	Times                 []uint64           `json:"Times"`
	SpeedTimes            []uint64           `json:"Speed Times"`
	Speeds                []float64          `json:"Speeds"`
	AltitudeReadings      []float64          `json:"Altitude Readings"`
	GradientCurve         []float64          `json:"Gradient Curve"`
	LatitudeReadings      []float64          `json:"Latitude Readings"`
	LongitudeReadings     []float64          `json:"Longitude Readings"`
	Intervals             []analyzer.LocationInterval `json:"Intervals"`

	MaximumPower    float64            `json:"Maximum Power"`
	AveragePower    float64            `json:"Average Power"`
	FiveSecondPower float64            `json:"5 Second Power"`
	TwelveMinPower  float64            `json:"12 Minute Power"`
	TwentyMinPower  float64            `json:"20 Minute Power"`
	OneHourPower    float64            `json:"1 Hour Power"`
	NormalizedPower float64            `json:"Normalized Power"`
	PowerReadings   []float64          `json:"Power Readings"`
	PowerTimes      []uint64           `json:"Power Times"`
	PowerIntervals  []analyzer.PowerInterval `json:"Power Intervals"`

	MaximumCadence float64   `json:"Maximum Cadence"`
	AverageCadence float64   `json:"Average Cadence"`
	CadenceReadings []float64 `json:"Cadence Readings"`
	CadenceTimes    []uint64  `json:"Cadence Times"`

	MaximumHeartRate float64   `json:"Maximum Heart Rate"`
	AverageHeartRate float64   `json:"Average Heart Rate"`
	HeartRateReadings []float64 `json:"Heart Rate Readings"`
	HeartRateTimes    []uint64  `json:"Heart Rate Times"`

	TemperatureReadings []float64 `json:"Temperature Readings"`
	TemperatureTimes    []uint64  `json:"Temperature Times"`

	SwimStrokeReadings []uint16 `json:"Swim Stroke Readings"`
	SwimStrokeTimes    []uint64 `json:"Swim Stroke Times"`

	Events []analyzer.Event `json:"Events"`
}

// Build projects ctx (already finalized via ctx.Finalize()) into a Report.
func Build(ctx *analyzer.Context) Report {
	loc := ctx.Location
	pow := ctx.Power

	return Report{
		StartTimeMs:           loc.StartTimeMs,
		EndTimeMs:             loc.LastTimeMs,
		ElapsedTime:           loc.ElapsedSeconds(),
		TotalDistance:         loc.TotalDistance,
		TotalVerticalDistance: loc.TotalVertical,
		AverageSpeed:          loc.AvgSpeed,
		Bests:                 loc.Bests,
		MileSplits:            loc.MileSplits,
		KMSplits:              loc.KMSplits,
		Times:                 loc.Times,
		SpeedTimes:            loc.SpeedTimes,
		Speeds:                loc.SpeedGraph,
		AltitudeReadings:      loc.AltitudeGraph,
		GradientCurve:         loc.GradientCurve,
		LatitudeReadings:      loc.LatitudeReadings,
		LongitudeReadings:     loc.LongitudeReadings,
		Intervals:             loc.SignificantIntervals,

		MaximumPower:    pow.MaxPower,
		AveragePower:    pow.AvgPower,
		FiveSecondPower: pow.Bests["5 Second Power"],
		TwelveMinPower:  pow.Bests["12 Minute Power"],
		TwentyMinPower:  pow.Bests["20 Minute Power"],
		OneHourPower:    pow.Bests["1 Hour Power"],
		NormalizedPower: pow.NP,
		PowerReadings:   pow.Readings,
		PowerTimes:      pow.TimeReadings,
		PowerIntervals:  pow.SignificantIntervals,

		MaximumCadence:  ctx.Cadence.MaxValue,
		AverageCadence:  ctx.Cadence.ComputeAverage(),
		CadenceReadings: ctx.Cadence.Readings,
		CadenceTimes:    ctx.Cadence.Timestamps,

		MaximumHeartRate:  ctx.HeartRate.MaxValue,
		AverageHeartRate:  ctx.HeartRate.ComputeAverage(),
		HeartRateReadings: ctx.HeartRate.Readings,
		HeartRateTimes:    ctx.HeartRate.Timestamps,

		TemperatureReadings: ctx.Temperature.Readings,
		TemperatureTimes:    ctx.Temperature.Timestamps,

		SwimStrokeReadings: ctx.Swim.Strokes,
		SwimStrokeTimes:    ctx.Swim.TimeReadings,

		Events: ctx.Events,
	}
}
