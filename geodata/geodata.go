// Package geodata holds process- or session-wide GeoJSON region data.
// It is intentionally inert storage: nothing in this repo wires these
// regions into a point-in-polygon lookup yet.
package geodata

import (
	"encoding/json"
	"fmt"
)

// FeatureCollection is a minimal GeoJSON FeatureCollection: only
// enough structure to validate the input is well-formed JSON of the
// expected shape. No geometry is interpreted.
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// Store holds the world and US region holders set via SetWorldData/SetUSData.
type Store struct {
	World *FeatureCollection
	US    *FeatureCollection
}

func (s *Store) SetWorldData(data []byte) error {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse world geojson: %w", err)
	}

	s.World = &fc

	return nil
}

func (s *Store) SetUSData(data []byte) error {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse us geojson: %w", err)
	}

	s.US = &fc

	return nil
}
