package writers

import (
	"fmt"
	"io"
)

// TCXPoint is one point handed to the TCX writer by export.Export.
type TCXPoint struct {
	TimestampMs        uint64
	Lat, Lon, Alt      float64
	DistanceMeters     float64
	HR, Cadence, Power *float64
}

// LapAggregates holds the computed lap-level rollups the TCX writer
// embeds in the <Lap> element.
type LapAggregates struct {
	TotalTimeSeconds float64
	DistanceMeters   float64
	Calories         int
	MaximumSpeed     float64
}

// TCX writes a TrainingCenterDatabase v2 document.
type TCX struct{}

func (TCX) Write(w io.Writer, sport string, agg LapAggregates, points []TCXPoint) error {
	if len(points) == 0 {
		_, err := fmt.Fprint(w, emptyTCXDoc(sport))
		return err
	}

	startTime := isoMillis(points[0].TimestampMs)

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<Activities><Activity Sport="%s">
<Id>%s</Id>
<Lap StartTime="%s">
<TotalTimeSeconds>%.2f</TotalTimeSeconds>
<DistanceMeters>%.2f</DistanceMeters>
<Calories>%d</Calories>
<MaximumSpeed>%.3f</MaximumSpeed>
<Track>
`, xmlEscape(sport), startTime, startTime, agg.TotalTimeSeconds, agg.DistanceMeters, agg.Calories, agg.MaximumSpeed); err != nil {
		return err
	}

	for _, p := range points {
		if err := writeTCXPoint(w, p); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "</Track></Lap></Activity></Activities></TrainingCenterDatabase>\n")

	return err
}

func writeTCXPoint(w io.Writer, p TCXPoint) error {
	if _, err := fmt.Fprintf(w, `<Trackpoint><Time>%s</Time><Position><LatitudeDegrees>%.7f</LatitudeDegrees><LongitudeDegrees>%.7f</LongitudeDegrees></Position><AltitudeMeters>%.2f</AltitudeMeters><DistanceMeters>%.2f</DistanceMeters>
`, isoMillis(p.TimestampMs), p.Lat, p.Lon, p.Alt, p.DistanceMeters); err != nil {
		return err
	}

	if p.HR != nil {
		if _, err := fmt.Fprintf(w, "<HeartRateBpm><Value>%.0f</Value></HeartRateBpm>\n", *p.HR); err != nil {
			return err
		}
	}

	if p.Cadence != nil {
		if _, err := fmt.Fprintf(w, "<Cadence>%.0f</Cadence>\n", *p.Cadence); err != nil {
			return err
		}
	}

	if p.Power != nil {
		if _, err := fmt.Fprintf(w, `<Extensions><TPX xmlns="http://www.garmin.com/xmlschemas/ActivityExtension/v2"><Watts>%.0f</Watts></TPX></Extensions>
`, *p.Power); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "</Trackpoint>\n")

	return err
}

func emptyTCXDoc(sport string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2">
<Activities><Activity Sport="%s"></Activity></Activities></TrainingCenterDatabase>
`, xmlEscape(sport))
}
