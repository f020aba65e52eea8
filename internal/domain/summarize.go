package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// TopZoneLimit is the number of zones kept by Summarize.
const TopZoneLimit = 5

// GroupZones folds points into one summary per zone_id, in the order each
// zone was first seen. Report counts over the result always add up to
// len(points). A single invalid point aborts the whole grouping.
func GroupZones(points []RawPoint) ([]ZoneSummary, error) {
	type sums struct {
		lat, lon float64
	}

	index := make(map[ZoneID]int, len(points))
	groups := make([]ZoneSummary, 0, len(points))
	totals := make([]sums, 0, len(points))

	for i, p := range points {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		g, ok := index[p.ZoneID]
		if !ok {
			g = len(groups)
			index[p.ZoneID] = g
			groups = append(groups, ZoneSummary{ZoneID: p.ZoneID})
			totals = append(totals, sums{})
		}
		totals[g].lat += p.CenterLat
		totals[g].lon += p.CenterLon
		groups[g].ReportCount++
	}

	for g := range groups {
		n := float64(groups[g].ReportCount)
		groups[g].CenterLat = totals[g].lat / n
		groups[g].CenterLon = totals[g].lon / n
	}
	return groups, nil
}

// Summarize returns at most TopZoneLimit zones ordered by report count,
// highest first. Zones with equal counts keep first-seen order.
func Summarize(points []RawPoint) ([]ZoneSummary, error) {
	groups, err := GroupZones(points)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(groups, func(a, b ZoneSummary) int {
		return cmp.Compare(b.ReportCount, a.ReportCount)
	})
	if len(groups) > TopZoneLimit {
		groups = groups[:TopZoneLimit:TopZoneLimit]
	}
	return groups, nil
}
