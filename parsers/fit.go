package parsers

import (
	"fmt"
	"io"
	"math"

	"github.com/tormoder/fit"

	"github.com/trailmetrics/activity-analyzer/analyzer"
)

const (
	semicircleToDegrees = 180.0 / 2147483648.0 // 180 / 2^31
	invalidSemicircle   = 0x7FFFFFFF
	gearChangeFront     = 42
	gearChangeRear      = 43
)

// FIT parses FIT binary activity files via github.com/tormoder/fit.
type FIT struct{}

// Parse decodes r into ctx. A record with an invalid position
// sentinel never calls AppendLocation, but its other valid fields
// (HR/cadence/power/temperature) are still recorded.
func (FIT) Parse(r io.Reader, ctx *analyzer.Context) error {
	decoded, err := fit.Decode(r)
	if err != nil {
		return fmt.Errorf("decode fit: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return fmt.Errorf("fit file has no activity: %w", err)
	}

	if len(activity.Sessions) > 0 {
		ctx.Location.SetActivityType(sportName(activity.Sessions[0].Sport))
	}

	for _, rec := range activity.Records {
		tsMs := uint64(rec.Timestamp.UnixMilli())

		if lat, lon, ok := extractPosition(rec); ok {
			if alt, ok := extractAltitude(rec); ok {
				ctx.Location.AppendLocation(tsMs, lat, lon, alt)
				ctx.Location.UpdateSpeeds()
			}
		}

		if hr, ok := extractFITHeartRate(rec); ok {
			ctx.HeartRate.AppendSensorValue(tsMs, hr)
		}

		if cad, ok := extractFITCadence(rec); ok {
			ctx.Cadence.AppendSensorValue(tsMs, cad)
		}

		if watts, ok := extractFITPower(rec); ok {
			ctx.Power.AppendSensorValue(tsMs, watts)
		}

		if temp, ok := extractFITTemperature(rec); ok {
			ctx.Temperature.AppendSensorValue(tsMs, temp)
		}
	}

	for _, ev := range activity.Events {
		if int(ev.Event) == gearChangeFront || int(ev.Event) == gearChangeRear {
			ctx.PushEvent(analyzer.Event{
				TimestampMs: uint64(ev.Timestamp.UnixMilli()),
				EventType:   "gear_change",
				EventData:   0,
			})
		}
	}

	return nil
}

func extractPosition(rec *fit.RecordMsg) (lat, lon float64, ok bool) {
	latSemi := int32(rec.PositionLat)
	lonSemi := int32(rec.PositionLong)

	if latSemi == invalidSemicircle || lonSemi == invalidSemicircle {
		return 0, 0, false
	}

	return float64(latSemi) * semicircleToDegrees, float64(lonSemi) * semicircleToDegrees, true
}

func extractAltitude(rec *fit.RecordMsg) (float64, bool) {
	if alt := rec.GetEnhancedAltitudeScaled(); !math.IsNaN(alt) {
		return alt, true
	}

	if alt := rec.GetAltitudeScaled(); !math.IsNaN(alt) {
		return alt, true
	}

	return 0, false
}

func extractFITHeartRate(rec *fit.RecordMsg) (float64, bool) {
	if rec.HeartRate == math.MaxUint8 {
		return 0, false
	}

	return float64(rec.HeartRate), true
}

func extractFITCadence(rec *fit.RecordMsg) (float64, bool) {
	if cad := rec.GetCadence256Scaled(); !math.IsNaN(cad) && cad > 0 {
		return cad, true
	}

	if rec.Cadence == math.MaxUint8 {
		return 0, false
	}

	return float64(rec.Cadence), true
}

func extractFITPower(rec *fit.RecordMsg) (float64, bool) {
	if rec.Power == math.MaxUint16 {
		return 0, false
	}

	return float64(rec.Power), true
}

func extractFITTemperature(rec *fit.RecordMsg) (float64, bool) {
	if int8(rec.Temperature) == math.MaxInt8 {
		return 0, false
	}

	return float64(rec.Temperature), true
}

func sportName(sport fit.Sport) string {
	switch sport {
	case fit.SportRunning:
		return "Running"
	case fit.SportCycling:
		return "Cycling"
	default:
		return "Unknown"
	}
}
