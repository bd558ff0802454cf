// Package writers emits GPX and TCX XML reproductions of a recorded
// track.
package writers

import (
	"fmt"
	"io"
	"time"
)

// GPXPoint is one point handed to the GPX writer by export.Export.
type GPXPoint struct {
	TimestampMs         uint64
	Lat, Lon, Alt       float64
	HR, Cadence, Power  *float64
}

// GPX writes a GPX 1.1 document with Garmin TrackPointExtension
// namespaces.
type GPX struct{}

func (GPX) Write(w io.Writer, trackName, activityType string, points []GPXPoint) error {
	startTime := ""
	if len(points) > 0 {
		startTime = isoMillis(points[0].TimestampMs)
	}

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="activity-analyzer" xmlns="http://www.topografix.com/GPX/1/1"
  xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
  xmlns:gpxx="http://www.garmin.com/xmlschemas/GpxExtensions/v3">
<metadata><time>%s</time></metadata>
<trk><name>%s</name><type>%s</type><trkseg>
`, startTime, xmlEscape(trackName), xmlEscape(activityType)); err != nil {
		return err
	}

	for _, p := range points {
		if err := writeGPXPoint(w, p); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "</trkseg></trk></gpx>\n")

	return err
}

func writeGPXPoint(w io.Writer, p GPXPoint) error {
	hasExt := p.HR != nil || p.Cadence != nil || p.Power != nil

	if !hasExt {
		_, err := fmt.Fprintf(w, `<trkpt lat="%.7f" lon="%.7f"><ele>%.2f</ele><time>%s</time></trkpt>
`, p.Lat, p.Lon, p.Alt, isoMillis(p.TimestampMs))

		return err
	}

	if _, err := fmt.Fprintf(w, `<trkpt lat="%.7f" lon="%.7f"><ele>%.2f</ele><time>%s</time><extensions><gpxtpx:TrackPointExtension>
`, p.Lat, p.Lon, p.Alt, isoMillis(p.TimestampMs)); err != nil {
		return err
	}

	if p.HR != nil {
		if _, err := fmt.Fprintf(w, "<gpxtpx:hr>%.0f</gpxtpx:hr>\n", *p.HR); err != nil {
			return err
		}
	}

	if p.Cadence != nil {
		if _, err := fmt.Fprintf(w, "<gpxtpx:cad>%.0f</gpxtpx:cad>\n", *p.Cadence); err != nil {
			return err
		}
	}

	if p.Power != nil {
		if _, err := fmt.Fprintf(w, "<power>%.0f</power>\n", *p.Power); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "</gpxtpx:TrackPointExtension></extensions></trkpt>\n")

	return err
}

func isoMillis(tsMs uint64) string {
	t := time.UnixMilli(int64(tsMs)).UTC()
	return t.Format("2006-01-02T15:04:05.000Z")
}

func xmlEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, []byte("&amp;")...)
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		default:
			out = append(out, s[i])
		}
	}

	return string(out)
}
