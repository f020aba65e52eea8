package domain

import (
	"fmt"
	"math"
)

// RawPoint is a single report row from the latest warehouse snapshot.
type RawPoint struct {
	ZoneID    ZoneID  `json:"zone_id"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// Validate reports whether the point has usable WGS-84 coordinates.
func (p RawPoint) Validate() error {
	if math.IsNaN(p.CenterLat) || math.IsInf(p.CenterLat, 0) ||
		math.IsNaN(p.CenterLon) || math.IsInf(p.CenterLon, 0) {
		return fmt.Errorf("%w: zone %s has a non-finite coordinate", ErrInvalidInput, p.ZoneID)
	}
	if p.CenterLat < -90 || p.CenterLat > 90 {
		return fmt.Errorf("%w: zone %s latitude %v out of range", ErrInvalidInput, p.ZoneID, p.CenterLat)
	}
	if p.CenterLon < -180 || p.CenterLon > 180 {
		return fmt.Errorf("%w: zone %s longitude %v out of range", ErrInvalidInput, p.ZoneID, p.CenterLon)
	}
	return nil
}

// ZoneSummary aggregates every report of one zone in a snapshot.
type ZoneSummary struct {
	ZoneID      ZoneID  `json:"zone_id"`
	CenterLat   float64 `json:"center_lat"`
	CenterLon   float64 `json:"center_lon"`
	ReportCount int     `json:"report_count"`

	// Reverse geocoding enrichment, empty when disabled or unresolved.
	PlaceName string `json:"place_name,omitempty"`
}

// DangerData is the payload served to web clients.
type DangerData struct {
	Points   []RawPoint    `json:"points"`
	TopZones []ZoneSummary `json:"top_zones"`
}

// NewDangerData builds a payload whose slices always encode as JSON arrays.
func NewDangerData(points []RawPoint, topZones []ZoneSummary) *DangerData {
	if points == nil {
		points = []RawPoint{}
	}
	if topZones == nil {
		topZones = []ZoneSummary{}
	}
	return &DangerData{Points: points, TopZones: topZones}
}
