package analyzer

import (
	"math"

	"github.com/trailmetrics/activity-analyzer/analyzer/geomath"
)

const thirtySecondsMs = 30_000

type powerThreshold struct {
	Name    string
	Seconds float64
}

var powerThresholds = []powerThreshold{
	{"5 Second Power", 5},
	{"12 Minute Power", 720},
	{"20 Minute Power", 1200},
	{"1 Hour Power", 3600},
}

// PowerInterval is one entry of PowerAnalyzer.SignificantIntervals.
type PowerInterval struct {
	StartTime uint64  `json:"start_time"`
	EndTime   uint64  `json:"end_time"`
	AvgPower  float64 `json:"avg_power"`
}

// PowerAnalyzer maintains the 30-second rolling buffer used for
// Normalized Power and the best-average-power records.
type PowerAnalyzer struct {
	TimeReadings []uint64  `json:"time_readings"`
	Readings     []float64 `json:"readings"`

	MaxPower float64 `json:"max_power"`
	AvgPower float64 `json:"avg_power"`

	NPBuf []float64 `json:"np_buf"`

	current30SecBuf           []float64
	current30SecBufStartTime uint64

	NP float64 `json:"np"`
	VI float64 `json:"vi"`

	Bests map[string]float64 `json:"bests"`

	SignificantIntervals []PowerInterval `json:"significant_intervals"`
}

func NewPowerAnalyzer() *PowerAnalyzer {
	return &PowerAnalyzer{Bests: make(map[string]float64)}
}

// AppendSensorValue ingests one power sample.
func (p *PowerAnalyzer) AppendSensorValue(tMs uint64, watts float64) {
	if len(p.TimeReadings) == 0 {
		p.current30SecBufStartTime = tMs
	}

	p.TimeReadings = append(p.TimeReadings, tMs)
	p.Readings = append(p.Readings, watts)

	if watts > p.MaxPower {
		p.MaxPower = watts
	}

	p.AvgPower = cumulativeMean(p.Readings)

	if tMs-p.current30SecBufStartTime > thirtySecondsMs && len(p.current30SecBuf) > 0 {
		p.NPBuf = append(p.NPBuf, meanOf(p.current30SecBuf))
		p.current30SecBuf = nil
		p.current30SecBufStartTime = tMs
	}

	p.current30SecBuf = append(p.current30SecBuf, watts)

	p.bestEffortWalk(tMs)
}

func cumulativeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func meanOf(values []float64) float64 { return cumulativeMean(values) }

// bestEffortWalk is the power analogue of LocationAnalyzer.UpdateSpeeds:
// a reverse walk over TimeReadings looking for exact-second hits on
// the 5s/12min/20min/1h windows. The average applied to Bests at each
// hit is the cumulative average of all readings so far, not the
// windowed average.
//
// The walk's elapsed-duration comparison is computed in seconds, not
// milliseconds: comparing a millisecond delta directly against
// second-scale thresholds would make the short-circuit guards fire far
// later than intended.
func (p *PowerAnalyzer) bestEffortWalk(latestTs uint64) {
	n := len(p.TimeReadings)
	if n == 0 {
		return
	}

	cumulativeAvg := p.AvgPower

	for i := n - 1; i >= 0; i-- {
		ts := p.TimeReadings[i]
		if latestTs <= ts {
			continue
		}

		durationS := float64(latestTs-ts) / 1000.0
		if durationS > 3600 {
			break
		}

		totalSeconds := (latestTs - ts) / 1000

		for _, thr := range powerThresholds {
			if durationS < thr.Seconds {
				break
			}

			if totalSeconds == uint64(thr.Seconds) {
				if existing, ok := p.Bests[thr.Name]; !ok || existing <= 0.1 || cumulativeAvg > existing {
					p.Bests[thr.Name] = cumulativeAvg
				}
			}
		}
	}
}

// Analyze computes Normalized Power and the Variability Index, then
// runs the shared interval extractor.
func (p *PowerAnalyzer) Analyze() {
	if len(p.NPBuf) > 1 {
		remainder := popOldestBlock(p.NPBuf)

		ap := cumulativeMean(remainder)

		var sumFourth float64
		for _, block := range remainder {
			fourth := block * block * block * block
			sumFourth += fourth
		}

		meanFourth := sumFourth / float64(len(remainder))
		p.NP = math.Pow(meanFourth, 0.25)

		if ap > 0 {
			p.VI = p.NP / ap
		}
	}

	const (
		powerVarianceCutoff = 0.50
		powerProminence     = 1.0
	)

	candidates := extractIntervalCandidates(p.TimeReadings, p.Readings, p.AvgPower, powerVarianceCutoff, powerProminence)
	if len(candidates) == 0 {
		p.SignificantIntervals = nil
		return
	}

	points := make([]geomath.Point2D, len(candidates))
	for i, c := range candidates {
		durationS := float64(c.EndTime-c.StartTime) / 1000.0
		points[i] = geomath.Point2D{X: c.AvgValue, Y: durationS}
	}

	sig := clusterSignificant(points)

	p.SignificantIntervals = nil
	for _, idx := range sig {
		c := candidates[idx]
		p.SignificantIntervals = append(p.SignificantIntervals, PowerInterval{
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			AvgPower:  c.AvgValue,
		})
	}
}

// popOldestBlock discards the first (ramp-up-contaminated) 30-second
// block before computing Normalized Power.
func popOldestBlock(buf []float64) []float64 {
	out := make([]float64, len(buf)-1)
	copy(out, buf[1:])

	return out
}
