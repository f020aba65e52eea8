// Package domain models danger-zone reports read from the analytics warehouse.
//
// # Data Source
//
// An upstream batch job clusters incident reports into "danger zones" and appends
// its output to a gold table (by default workspace.default.gold_danger_zones).
// Every job run stamps all of its rows with the same run_timestamp, so the rows
// sharing the maximum run_timestamp form the current snapshot. Earlier runs stay
// in the table and are ignored here.
//
// Row shape:
//
//	zone_id       STRING or BIGINT   cluster identifier, stable within a run
//	center_lat    DOUBLE/DECIMAL     WGS-84 latitude of one report
//	center_lon    DOUBLE/DECIMAL     WGS-84 longitude of one report
//	run_timestamp TIMESTAMP          job run that produced the row
//
// A zone may appear on many rows within one run: each row is an independent
// report. Drivers hand coordinates back as float64, decimal text or bytes
// depending on the column type; [CoerceFloat] normalizes them.
//
// # Summaries
//
// [GroupZones] folds the snapshot into one [ZoneSummary] per zone_id (exact
// identifier equality, no spatial clustering) with the arithmetic mean of the
// coordinates and the number of reports. [Summarize] ranks those groups by
// report count and keeps the first [TopZoneLimit]. Zones with equal counts keep
// the order in which their first report appeared in the snapshot.
package domain
