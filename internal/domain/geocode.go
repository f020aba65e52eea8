package domain

import (
	"context"
	"log/slog"
)

// EnrichTopZones names each zone centroid through the geocoder. Lookups are
// best effort: a failed or empty lookup leaves PlaceName unset and never
// fails the summary. The input slice is not modified.
func EnrichTopZones(ctx context.Context, zones []ZoneSummary, geocoder Geocoder, logger *slog.Logger) []ZoneSummary {
	if geocoder == nil || len(zones) == 0 {
		return zones
	}

	out := make([]ZoneSummary, len(zones))
	copy(out, zones)

	for i := range out {
		if ctx.Err() != nil {
			break
		}
		result, err := geocoder.ReverseGeocode(ctx, out[i].CenterLat, out[i].CenterLon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"zone_id", out[i].ZoneID.String(),
				"lat", out[i].CenterLat,
				"lon", out[i].CenterLon,
				"error", err,
			)
			continue
		}
		if result.PlaceName != "" {
			out[i].PlaceName = result.PlaceName
		} else {
			out[i].PlaceName = result.FormattedAddress
		}
	}
	return out
}
