package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/danger-zones/internal/domain"
)

// snapshotQuery selects every report of the latest run. The table name is
// validated by config.Load before it reaches this template.
const snapshotQuery = `
SELECT zone_id, center_lat, center_lon
FROM %[1]s
WHERE run_timestamp = (
	SELECT MAX(run_timestamp)
	FROM %[1]s
)`

// Fetcher reads the latest danger-zone snapshot from the warehouse.
type Fetcher struct {
	connector Connector
	query     string
	logger    *slog.Logger
}

// NewFetcher creates a Fetcher reading from table.
func NewFetcher(connector Connector, table string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		connector: connector,
		query:     fmt.Sprintf(snapshotQuery, table),
		logger:    logger,
	}
}

// FetchLatestPoints returns all rows stamped with the maximum run_timestamp.
// An empty table yields an empty slice. Any connection, query or coercion
// failure yields ErrDataUnavailable and no points. The connection is opened
// and released within the call.
func (f *Fetcher) FetchLatestPoints(ctx context.Context) ([]domain.RawPoint, error) {
	db, err := f.connector.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open warehouse: %w", domain.ErrDataUnavailable, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			f.logger.Warn("close warehouse handle failed", "error", err)
		}
	}()

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", domain.ErrDataUnavailable, err)
	}
	defer conn.Close() //nolint:errcheck // the pool close above reports failures

	rows, err := conn.QueryContext(ctx, f.query)
	if err != nil {
		return nil, fmt.Errorf("%w: query snapshot: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	f.logger.Debug("snapshot fetched", "points", len(points))
	return points, nil
}

// columnIndex locates the snapshot columns by name so that the mapping does
// not depend on driver column order.
type columnIndex struct {
	zoneID, lat, lon int
}

func indexColumns(columns []string) (columnIndex, error) {
	idx := columnIndex{zoneID: -1, lat: -1, lon: -1}
	for i, name := range columns {
		switch strings.ToLower(name) {
		case "zone_id":
			idx.zoneID = i
		case "center_lat":
			idx.lat = i
		case "center_lon":
			idx.lon = i
		}
	}
	if idx.zoneID < 0 || idx.lat < 0 || idx.lon < 0 {
		return idx, fmt.Errorf("snapshot columns %v missing zone_id, center_lat or center_lon", columns)
	}
	return idx, nil
}

func scanPoints(rows *sql.Rows) ([]domain.RawPoint, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	idx, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	points := make([]domain.RawPoint, 0)
	for row := 0; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", row, err)
		}
		p, err := toRawPoint(values, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return points, nil
}

func toRawPoint(values []any, idx columnIndex) (domain.RawPoint, error) {
	id, err := domain.CoerceZoneID(values[idx.zoneID])
	if err != nil {
		return domain.RawPoint{}, fmt.Errorf("zone_id: %w", err)
	}
	lat, err := domain.CoerceFloat(values[idx.lat])
	if err != nil {
		return domain.RawPoint{}, fmt.Errorf("center_lat: %w", err)
	}
	lon, err := domain.CoerceFloat(values[idx.lon])
	if err != nil {
		return domain.RawPoint{}, fmt.Errorf("center_lon: %w", err)
	}
	return domain.RawPoint{ZoneID: id, CenterLat: lat, CenterLon: lon}, nil
}
