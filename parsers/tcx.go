package parsers

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/trailmetrics/activity-analyzer/analyzer"
)

type tcxDoc struct {
	XMLName    xml.Name `xml:"TrainingCenterDatabase"`
	Activities struct {
		Activity []tcxActivity `xml:"Activity"`
	} `xml:"Activities"`
}

type tcxActivity struct {
	Sport string    `xml:"Sport,attr"`
	Laps  []tcxLap  `xml:"Lap"`
}

type tcxLap struct {
	StartTime string `xml:"StartTime,attr"`
	Tracks    []struct {
		Trackpoints []tcxTrackpoint `xml:"Trackpoint"`
	} `xml:"Track"`
}

type tcxTrackpoint struct {
	Time     string `xml:"Time"`
	Position *struct {
		LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
		LongitudeDegrees float64 `xml:"LongitudeDegrees"`
	} `xml:"Position"`
	AltitudeMeters *float64 `xml:"AltitudeMeters"`
	HeartRateBpm   *struct {
		Value float64 `xml:"Value"`
	} `xml:"HeartRateBpm"`
	Cadence    *float64 `xml:"Cadence"`
	Extensions *struct {
		TPX *struct {
			Watts *float64 `xml:"Watts"`
		} `xml:"TPX"`
	} `xml:"Extensions"`
}

// TCX parses TCX v2 documents.
type TCX struct{}

// Parse decodes r into ctx. A trackpoint is only accepted into the
// location stream when BOTH position and altitude are present;
// HR/cadence/power are appended independently of position presence.
func (TCX) Parse(r io.Reader, ctx *analyzer.Context) error {
	var doc tcxDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("parse tcx: %w", err)
	}

	if len(doc.Activities.Activity) > 0 {
		ctx.Location.SetActivityType(normalizeSport(doc.Activities.Activity[0].Sport))
	}

	for _, act := range doc.Activities.Activity {
		for _, lap := range act.Laps {
			ctx.Location.LapTimes = appendLapTime(ctx.Location.LapTimes, lap.StartTime)

			for _, trk := range lap.Tracks {
				for _, pt := range trk.Trackpoints {
					t, err := time.Parse(time.RFC3339Nano, pt.Time)
					if err != nil {
						continue
					}

					tsMs := uint64(t.UnixMilli())

					if pt.Position != nil && pt.AltitudeMeters != nil {
						ctx.Location.AppendLocation(tsMs, pt.Position.LatitudeDegrees, pt.Position.LongitudeDegrees, *pt.AltitudeMeters)
						ctx.Location.UpdateSpeeds()
					}

					if pt.HeartRateBpm != nil {
						ctx.HeartRate.AppendSensorValue(tsMs, pt.HeartRateBpm.Value)
					}

					if pt.Cadence != nil {
						ctx.Cadence.AppendSensorValue(tsMs, *pt.Cadence)
					}

					if pt.Extensions != nil && pt.Extensions.TPX != nil && pt.Extensions.TPX.Watts != nil {
						ctx.Power.AppendSensorValue(tsMs, *pt.Extensions.TPX.Watts)
					}
				}
			}
		}
	}

	return nil
}

func appendLapTime(laps []uint64, startTime string) []uint64 {
	t, err := time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return laps
	}

	return append(laps, uint64(t.UnixMilli()))
}

func normalizeSport(sport string) string {
	switch sport {
	case "Running", "Biking":
		if sport == "Biking" {
			return "Cycling"
		}

		return sport
	default:
		return sport
	}
}
