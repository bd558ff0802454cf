package analyzer

// MergeWarning is surfaced by MergeTool.Merge when the "stop at the
// shorter stream" merge semantics caused a non-empty tail to be
// dropped, so the host can warn rather than silently lose data.
type MergeWarning struct {
	Stream          string
	DroppedSamplesA int
	DroppedSamplesB int
}

// MergeTool fuses two previously-ingested contexts into a fresh one,
// aligning sample streams by timestamp with a 1-second tolerance
// window.
type MergeTool struct{}

// Merge produces a new context C from A and B. It does not mutate
// its inputs.
func (MergeTool) Merge(a, b *Context) (*Context, []MergeWarning) {
	out := NewContext(a.Name+" + "+b.Name, a.Location.ActivityType)

	var warnings []MergeWarning

	mergeLocation(out.Location, a.Location, b.Location, &warnings)
	mergeScalarInto(out.HeartRate, &a.HeartRate.scalarSeries, &b.HeartRate.scalarSeries, "heart_rate", &warnings)
	mergeScalarInto(out.Cadence, &a.Cadence.scalarSeries, &b.Cadence.scalarSeries, "cadence", &warnings)
	mergeScalarInto(out.Temperature, &a.Temperature.scalarSeries, &b.Temperature.scalarSeries, "temperature", &warnings)
	mergePowerInto(out.Power, a.Power, b.Power, &warnings)

	out.Finalize()

	return out, warnings
}

func mergeLocation(out, a, b *LocationAnalyzer, warnings *[]MergeWarning) {
	i, j := 0, 0

	for i < len(a.Times) && j < len(b.Times) {
		ta, tb := a.Times[i], b.Times[j]

		switch {
		case closeEnough(ta, tb):
			t := (ta + tb) / 2
			lat := (a.LatitudeReadings[i] + b.LatitudeReadings[j]) / 2
			lon := (a.LongitudeReadings[i] + b.LongitudeReadings[j]) / 2
			alt := (a.AltitudeGraph[i] + b.AltitudeGraph[j]) / 2
			out.AppendLocation(t, lat, lon, alt)
			out.UpdateSpeeds()
			i++
			j++
		case ta < tb:
			out.AppendLocation(ta, a.LatitudeReadings[i], a.LongitudeReadings[i], a.AltitudeGraph[i])
			out.UpdateSpeeds()
			i++
		default:
			out.AppendLocation(tb, b.LatitudeReadings[j], b.LongitudeReadings[j], b.AltitudeGraph[j])
			out.UpdateSpeeds()
			j++
		}
	}

	if remA, remB := len(a.Times)-i, len(b.Times)-j; remA > 0 || remB > 0 {
		*warnings = append(*warnings, MergeWarning{Stream: "location", DroppedSamplesA: remA, DroppedSamplesB: remB})
	}
}

func mergeScalarInto(out interface {
	AppendSensorValue(uint64, float64)
}, a, b *scalarSeries, name string, warnings *[]MergeWarning) {
	i, j := 0, 0

	for i < len(a.Timestamps) && j < len(b.Timestamps) {
		ta, tb := a.Timestamps[i], b.Timestamps[j]

		switch {
		case closeEnough(ta, tb):
			out.AppendSensorValue((ta+tb)/2, (a.Readings[i]+b.Readings[j])/2)
			i++
			j++
		case ta < tb:
			out.AppendSensorValue(ta, a.Readings[i])
			i++
		default:
			out.AppendSensorValue(tb, b.Readings[j])
			j++
		}
	}

	if remA, remB := len(a.Timestamps)-i, len(b.Timestamps)-j; remA > 0 || remB > 0 {
		*warnings = append(*warnings, MergeWarning{Stream: name, DroppedSamplesA: remA, DroppedSamplesB: remB})
	}
}

func mergePowerInto(out, a, b *PowerAnalyzer, warnings *[]MergeWarning) {
	i, j := 0, 0

	for i < len(a.TimeReadings) && j < len(b.TimeReadings) {
		ta, tb := a.TimeReadings[i], b.TimeReadings[j]

		switch {
		case closeEnough(ta, tb):
			out.AppendSensorValue((ta+tb)/2, (a.Readings[i]+b.Readings[j])/2)
			i++
			j++
		case ta < tb:
			out.AppendSensorValue(ta, a.Readings[i])
			i++
		default:
			out.AppendSensorValue(tb, b.Readings[j])
			j++
		}
	}

	if remA, remB := len(a.TimeReadings)-i, len(b.TimeReadings)-j; remA > 0 || remB > 0 {
		*warnings = append(*warnings, MergeWarning{Stream: "power", DroppedSamplesA: remA, DroppedSamplesB: remB})
	}
}

func closeEnough(a, b uint64) bool {
	var diff int64
	if a > b {
		diff = int64(a - b)
	} else {
		diff = int64(b - a)
	}

	return diff < 1000
}
