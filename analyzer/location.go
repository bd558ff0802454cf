package analyzer

import (
	"math"

	"github.com/trailmetrics/activity-analyzer/analyzer/geomath"
)

const (
	metersPerKM    = 1000.0
	metersPerMile  = 1609.34
	halfMarathonMi = 13.1
	marathonMi     = 26.2
	centuryMi      = 100.0
)

// DistanceNode is one entry of the strictly-monotonic cumulative
// distance buffer the reverse walk scans.
type DistanceNode struct {
	TimestampMs        uint64
	CumulativeDistance float64
}

// LocationInterval is one entry of LocationAnalyzer.SignificantIntervals.
type LocationInterval struct {
	StartTime        uint64  `json:"start_time"`
	EndTime          uint64  `json:"end_time"`
	LineLengthMeters float64 `json:"line_length_meters"`
	LineAvgSpeed     float64 `json:"line_avg_speed"`
}

type recordThreshold struct {
	Name     string
	Distance float64
}

// LocationAnalyzer is the core analyzer: geodesy, distance/speed,
// splits, best-effort records, and interval detection.
type LocationAnalyzer struct {
	StartTimeMs uint64 `json:"start_time_ms"`
	LastTimeMs  uint64 `json:"last_time_ms"`

	lastLat, lastLon, lastAlt float64

	DistanceBuf []DistanceNode `json:"distance_buf"`

	SpeedTimes []uint64  `json:"speed_times"`
	SpeedGraph []float64 `json:"speed_graph"`

	TotalDistance float64 `json:"total_distance"`
	TotalVertical float64 `json:"total_vertical"`

	Times             []uint64  `json:"times"`
	LatitudeReadings  []float64 `json:"latitude_readings"`
	LongitudeReadings []float64 `json:"longitude_readings"`
	AltitudeGraph     []float64 `json:"altitude_graph"`
	GradientCurve     []float64 `json:"gradient_curve"`
	GAPGraph          []float64 `json:"gap_graph"`

	MileSplits []uint64 `json:"mile_splits"`
	KMSplits   []uint64 `json:"km_splits"`
	LapTimes   []uint64 `json:"lap_times"`

	Bests map[string]uint64 `json:"bests"`

	AvgSpeed         float64 `json:"avg_speed"`
	ActivityType     string  `json:"activity_type"`
	SpeedWindowSize  int     `json:"speed_window_size"`

	lastSpeedBufUpdateTime uint64

	SignificantIntervals []LocationInterval `json:"significant_intervals"`
}

// SetActivityType updates the activity type and the derived speed
// window size together, so a parser adapter that only learns the
// sport partway through a document (TCX/FIT) never leaves the window
// stale relative to the type.
func (l *LocationAnalyzer) SetActivityType(activityType string) {
	l.ActivityType = activityType

	if activityType == "Cycling" {
		l.SpeedWindowSize = 7
	} else {
		l.SpeedWindowSize = 11
	}
}

// NewLocationAnalyzer constructs an analyzer for the given activity
// type ("Running", "Cycling", or anything else for an unclassified
// activity). The speed window is 7 seconds for cycling, 11 otherwise.
func NewLocationAnalyzer(activityType string) *LocationAnalyzer {
	window := 11
	if activityType == "Cycling" {
		window = 7
	}

	return &LocationAnalyzer{
		ActivityType:    activityType,
		SpeedWindowSize: window,
		Bests:           make(map[string]uint64),
	}
}

// AppendLocation ingests one GPS fix. The first call records
// StartTimeMs, the last-fix fields, a zero-distance DistanceBuf node
// and the sample arrays, but computes no distance, gradient or split;
// subsequent calls run the full haversine/gradient/split pipeline.
func (l *LocationAnalyzer) AppendLocation(tMs uint64, lat, lon, alt float64) {
	first := len(l.Times) == 0

	if first {
		l.StartTimeMs = tMs
	}

	var metersTraveled float64
	if !first {
		metersTraveled = geomath.Haversine3D(l.lastLat, l.lastLon, l.lastAlt, lat, lon, alt)
	}

	if !first && len(l.AltitudeGraph) > 0 {
		prevAlt := l.AltitudeGraph[len(l.AltitudeGraph)-1]

		var gradient float64
		if metersTraveled > 0 {
			gradient = (alt - prevAlt) / metersTraveled
		}

		l.GradientCurve = append(l.GradientCurve, gradient)
		l.GAPGraph = append(l.GAPGraph, gradeAdjustedPace(gradient, metersTraveled))
	}

	if first {
		l.DistanceBuf = append(l.DistanceBuf, DistanceNode{TimestampMs: tMs, CumulativeDistance: 0})
	} else {
		newCum := l.TotalDistance + metersTraveled
		l.DistanceBuf = append(l.DistanceBuf, DistanceNode{TimestampMs: tMs, CumulativeDistance: newCum})
		l.TotalDistance = newCum

		if alt > l.lastAlt {
			l.TotalVertical += alt - l.lastAlt
		}
	}

	l.Times = append(l.Times, tMs)
	l.LatitudeReadings = append(l.LatitudeReadings, lat)
	l.LongitudeReadings = append(l.LongitudeReadings, lon)
	l.AltitudeGraph = append(l.AltitudeGraph, alt)

	if tMs > l.StartTimeMs {
		elapsedSeconds := float64(tMs-l.StartTimeMs) / 1000.0
		if elapsedSeconds > 0 {
			l.AvgSpeed = l.TotalDistance / elapsedSeconds
		}

		l.KMSplits = updateSplitArray(l.KMSplits, l.TotalDistance, metersPerKM, elapsedSeconds)
		l.MileSplits = updateSplitArray(l.MileSplits, l.TotalDistance, metersPerMile, elapsedSeconds)
	}

	l.lastLat, l.lastLon, l.lastAlt = lat, lon, alt
	l.LastTimeMs = tMs
}

func updateSplitArray(splits []uint64, totalDistance, unit, elapsedSeconds float64) []uint64 {
	unitsTraveled := int(math.Floor(totalDistance / unit))
	es := uint64(elapsedSeconds)

	if unitsTraveled+1 > len(splits) {
		return append(splits, es)
	}

	splits[unitsTraveled] = es

	return splits
}

// gradeAdjustedPace applies a cubic gradient cost polynomial to
// populate GAPGraph; it never gates any other behavior.
func gradeAdjustedPace(gradient, metersTraveled float64) float64 {
	g := gradient * 100.0
	costMultiplier := 1.0 + g*(0.025+g*(0.0005-g*0.0000005))

	if metersTraveled <= 0 {
		return 0
	}

	return metersTraveled * costMultiplier
}

func (l *LocationAnalyzer) recordThresholds() []recordThreshold {
	thresholds := []recordThreshold{
		{"Best 1K", metersPerKM},
		{"Best Mile", metersPerMile},
		{"Best 5K", 5 * metersPerKM},
		{"Best 10K", 10 * metersPerKM},
	}

	switch l.ActivityType {
	case "Running":
		thresholds = append(thresholds,
			recordThreshold{"Best 15K", 15 * metersPerKM},
			recordThreshold{"Best Half Marathon", halfMarathonMi * metersPerMile},
			recordThreshold{"Best Marathon", marathonMi * metersPerMile},
		)
	case "Cycling":
		thresholds = append(thresholds,
			recordThreshold{"Best Metric Century", 100 * metersPerKM},
			recordThreshold{"Best Century", centuryMi * metersPerMile},
		)
	}

	return thresholds
}

// UpdateSpeeds walks DistanceBuf in reverse from the latest sample,
// filling in one instantaneous-speed sample per real second once the
// rolling window fills, and firing best-effort record checks.
func (l *LocationAnalyzer) UpdateSpeeds() {
	thresholds := l.recordThresholds()

	for i := len(l.DistanceBuf) - 1; i >= 0; i-- {
		node := l.DistanceBuf[i]

		if l.LastTimeMs <= node.TimestampMs {
			continue
		}

		deltaTs := float64(l.LastTimeMs-node.TimestampMs) / 1000.0
		if deltaTs <= 0 {
			continue
		}

		deltaM := l.TotalDistance - node.CumulativeDistance

		totalSeconds := (l.LastTimeMs - node.TimestampMs) / 1000
		if totalSeconds == uint64(l.SpeedWindowSize) {
			currentSpeed := deltaM / deltaTs

			if node.TimestampMs > l.lastSpeedBufUpdateTime {
				l.SpeedTimes = append(l.SpeedTimes, node.TimestampMs)
				l.SpeedGraph = append(l.SpeedGraph, currentSpeed)
				l.lastSpeedBufUpdateTime = node.TimestampMs
			}
		}

		for _, thr := range thresholds {
			if deltaM < thr.Distance {
				break
			}

			if math.Floor(deltaM) == math.Floor(thr.Distance) {
				if _, exists := l.Bests[thr.Name]; !exists {
					l.Bests[thr.Name] = uint64(deltaTs)
				}
			}
		}
	}
}

const (
	locationVarianceCutoff = 0.25
	locationProminence     = 0.3
)

// Analyze runs the shared interval extractor over the speed series
// and populates SignificantIntervals.
func (l *LocationAnalyzer) Analyze() {
	candidates := extractIntervalCandidates(l.SpeedTimes, l.SpeedGraph, l.AvgSpeed, locationVarianceCutoff, locationProminence)
	if len(candidates) == 0 {
		l.SignificantIntervals = nil
		return
	}

	points := make([]geomath.Point2D, len(candidates))
	for i, c := range candidates {
		points[i] = geomath.Point2D{X: c.AvgValue, Y: l.scanDistance(c.StartTime, c.EndTime)}
	}

	sig := clusterSignificant(points)

	l.SignificantIntervals = nil
	for _, idx := range sig {
		c := candidates[idx]
		l.SignificantIntervals = append(l.SignificantIntervals, LocationInterval{
			StartTime:        c.StartTime,
			EndTime:          c.EndTime,
			LineLengthMeters: points[idx].Y,
			LineAvgSpeed:     c.AvgValue,
		})
	}
}

// scanDistance linearly scans DistanceBuf for the cumulative-distance
// delta between two sample timestamps.
func (l *LocationAnalyzer) scanDistance(startTs, endTs uint64) float64 {
	var startDist, endDist float64

	for _, n := range l.DistanceBuf {
		if n.TimestampMs == startTs {
			startDist = n.CumulativeDistance
		}

		if n.TimestampMs == endTs {
			endDist = n.CumulativeDistance
		}
	}

	return endDist - startDist
}

// ElapsedSeconds returns the activity's total elapsed time.
func (l *LocationAnalyzer) ElapsedSeconds() float64 {
	if l.LastTimeMs <= l.StartTimeMs {
		return 0
	}

	return float64(l.LastTimeMs-l.StartTimeMs) / 1000.0
}
