package export

import (
	"fmt"
	"time"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/trailmetrics/activity-analyzer/analyzer"
)

// canonicalSampleRow is one merged-timeline row of the optional
// Parquet side artifact: every stream resampled onto the location
// analyzer's own timestamps.
type canonicalSampleRow struct {
	TSUTCISO   string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ElapsedS   float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	LatDeg     float64 `parquet:"name=lat_deg, type=DOUBLE"`
	LonDeg     float64 `parquet:"name=lon_deg, type=DOUBLE"`
	AltitudeM  float64 `parquet:"name=altitude_m, type=DOUBLE"`
	DistanceM  float64 `parquet:"name=distance_m, type=DOUBLE"`
	SpeedMPS   float64 `parquet:"name=speed_mps, type=DOUBLE"`
	PowerW     float64 `parquet:"name=power_w, type=DOUBLE"`
	HRBPM      float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	CadenceRPM float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
}

// WriteParquet marshals ctx's merged sample timeline into a columnar
// Parquet buffer, an optional side artifact alongside GPX/TCX export.
func WriteParquet(ctx *analyzer.Context) ([]byte, error) {
	loc := ctx.Location

	fw := parquetbuffer.NewBufferFile()

	pw, err := writer.NewParquetWriter(fw, new(canonicalSampleRow), 4)
	if err != nil {
		return nil, fmt.Errorf("new parquet writer: %w", err)
	}

	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	hrCur := &cursor{times: ctx.HeartRate.Timestamps}
	cadCur := &cursor{times: ctx.Cadence.Timestamps}
	powCur := &cursor{times: ctx.Power.TimeReadings}
	spdCur := &cursor{times: loc.SpeedTimes}

	for i, ts := range loc.Times {
		row := canonicalSampleRow{
			TSUTCISO:  time.UnixMilli(int64(ts)).UTC().Format(time.RFC3339Nano),
			ElapsedS:  float64(ts-loc.StartTimeMs) / 1000.0,
			LatDeg:    loc.LatitudeReadings[i],
			LonDeg:    loc.LongitudeReadings[i],
			AltitudeM: loc.AltitudeGraph[i],
			DistanceM: loc.DistanceBuf[i].CumulativeDistance,
		}

		if j := hrCur.advanceTo(ts); j >= 0 {
			row.HRBPM = ctx.HeartRate.Readings[j]
		}

		if j := cadCur.advanceTo(ts); j >= 0 {
			row.CadenceRPM = ctx.Cadence.Readings[j]
		}

		if j := powCur.advanceTo(ts); j >= 0 {
			row.PowerW = ctx.Power.Readings[j]
		}

		if j := spdCur.advanceTo(ts); j >= 0 {
			row.SpeedMPS = loc.SpeedGraph[j]
		}

		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet: %w", err)
	}

	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("close parquet buffer: %w", err)
	}

	return append([]byte(nil), fw.Bytes()...), nil
}
