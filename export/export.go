// Package export drives the index-cursor merge-join of location,
// heart-rate, cadence, and power streams and dispatches to the GPX/TCX
// writers. FIT export is out of scope and returns an empty string.
package export

import (
	"strings"

	"github.com/trailmetrics/activity-analyzer/analyzer"
	"github.com/trailmetrics/activity-analyzer/writers"
)

// Options configures one Export call.
type Options struct {
	Format           string // "gpx", "tcx", or "fit"
	SplitStartOffsMs uint64
	SplitEndOffsMs   uint64 // 0 means "to the end"
	WriteParquet     bool   // not read by Export; the Parquet side artifact comes from WriteParquet
}

// Export reproduces ctx's track in the requested format, cropped to
// the optional split window.
func Export(ctx *analyzer.Context, opts Options) (string, error) {
	switch opts.Format {
	case "gpx":
		return exportGPX(ctx, opts)
	case "tcx":
		return exportTCX(ctx, opts)
	case "fit":
		return "", nil
	default:
		return "", nil
	}
}

type cursor struct {
	times []uint64
	idx   int
}

func (c *cursor) advanceTo(ts uint64) int {
	for c.idx < len(c.times) && c.times[c.idx] < ts {
		c.idx++
	}

	if c.idx < len(c.times) {
		return c.idx
	}

	return -1
}

func inWindow(ts, startTimeMs, splitStartMs, splitEndMs uint64) bool {
	lower := startTimeMs + splitStartMs
	if ts < lower {
		return false
	}

	if splitEndMs == 0 {
		return true
	}

	upper := startTimeMs + splitEndMs

	return ts < upper
}

func exportGPX(ctx *analyzer.Context, opts Options) (string, error) {
	loc := ctx.Location
	hrCur := &cursor{times: ctx.HeartRate.Timestamps}
	cadCur := &cursor{times: ctx.Cadence.Timestamps}
	powCur := &cursor{times: ctx.Power.TimeReadings}

	points := make([]writers.GPXPoint, 0, len(loc.Times))

	for i, ts := range loc.Times {
		if !inWindow(ts, loc.StartTimeMs, opts.SplitStartOffsMs, opts.SplitEndOffsMs) {
			continue
		}

		p := writers.GPXPoint{
			TimestampMs: ts,
			Lat:         loc.LatitudeReadings[i],
			Lon:         loc.LongitudeReadings[i],
			Alt:         loc.AltitudeGraph[i],
		}

		if j := hrCur.advanceTo(ts); j >= 0 {
			v := ctx.HeartRate.Readings[j]
			p.HR = &v
		}

		if j := cadCur.advanceTo(ts); j >= 0 {
			v := ctx.Cadence.Readings[j]
			p.Cadence = &v
		}

		if j := powCur.advanceTo(ts); j >= 0 {
			v := ctx.Power.Readings[j]
			p.Power = &v
		}

		points = append(points, p)
	}

	var sb strings.Builder
	if err := (writers.GPX{}).Write(&sb, ctx.Name, loc.ActivityType, points); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func exportTCX(ctx *analyzer.Context, opts Options) (string, error) {
	loc := ctx.Location
	hrCur := &cursor{times: ctx.HeartRate.Timestamps}
	cadCur := &cursor{times: ctx.Cadence.Timestamps}
	powCur := &cursor{times: ctx.Power.TimeReadings}

	points := make([]writers.TCXPoint, 0, len(loc.Times))

	var maxSpeed float64

	for i, ts := range loc.Times {
		if !inWindow(ts, loc.StartTimeMs, opts.SplitStartOffsMs, opts.SplitEndOffsMs) {
			continue
		}

		dist := loc.DistanceBuf[i].CumulativeDistance

		p := writers.TCXPoint{
			TimestampMs:    ts,
			Lat:            loc.LatitudeReadings[i],
			Lon:            loc.LongitudeReadings[i],
			Alt:            loc.AltitudeGraph[i],
			DistanceMeters: dist,
		}

		if j := hrCur.advanceTo(ts); j >= 0 {
			v := ctx.HeartRate.Readings[j]
			p.HR = &v
		}

		if j := cadCur.advanceTo(ts); j >= 0 {
			v := ctx.Cadence.Readings[j]
			p.Cadence = &v
		}

		if j := powCur.advanceTo(ts); j >= 0 {
			v := ctx.Power.Readings[j]
			p.Power = &v
		}

		points = append(points, p)
	}

	for _, s := range loc.SpeedGraph {
		if s > maxSpeed {
			maxSpeed = s
		}
	}

	agg := writers.LapAggregates{
		TotalTimeSeconds: loc.ElapsedSeconds(),
		DistanceMeters:   loc.TotalDistance,
		Calories:         estimateCalories(ctx),
		MaximumSpeed:     maxSpeed,
	}

	var sb strings.Builder
	if err := (writers.TCX{}).Write(&sb, loc.ActivityType, agg, points); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// estimateCalories is a rough kcal estimate from average power (for
// power-bearing activities) or a MET-style distance/time heuristic
// otherwise, so the TCX <Calories> field carries a real value.
func estimateCalories(ctx *analyzer.Context) int {
	elapsed := ctx.Location.ElapsedSeconds()
	if elapsed <= 0 {
		return 0
	}

	if ctx.Power.AvgPower > 0 {
		// Mechanical work (watts over elapsed seconds) at 4184 J per
		// kcal, divided by ~24% gross efficiency for metabolic kcal.
		joules := ctx.Power.AvgPower * elapsed
		return int(joules / 4184.0 * 1000.0 / 1000.0 / 0.24)
	}

	// Fallback: ~60 kcal/km for running-pace efforts.
	return int(ctx.Location.TotalDistance / 1000.0 * 60.0)
}
