package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoerceFloat converts a driver-native column value to float64. Decimal
// columns arrive as text or bytes from most SQL drivers.
func CoerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	case fmt.Stringer:
		return parseFloat(x.String())
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as float: %w", s, err)
	}
	return f, nil
}

// CoerceZoneID converts a driver-native column value to a ZoneID.
func CoerceZoneID(v any) (ZoneID, error) {
	switch x := v.(type) {
	case string:
		return StringZoneID(x), nil
	case []byte:
		return StringZoneID(string(x)), nil
	case int64:
		return IntZoneID(x), nil
	case int32:
		return IntZoneID(int64(x)), nil
	case int:
		return IntZoneID(int64(x)), nil
	case int16:
		return IntZoneID(int64(x)), nil
	case int8:
		return IntZoneID(int64(x)), nil
	case uint32:
		return IntZoneID(int64(x)), nil
	case uint16:
		return IntZoneID(int64(x)), nil
	case uint8:
		return IntZoneID(int64(x)), nil
	case uint64:
		return unsignedZoneID(x)
	case uint:
		return unsignedZoneID(uint64(x))
	case float64:
		// Some drivers surface BIGINT through float columns.
		return integralZoneID(x)
	case float32:
		return integralZoneID(float64(x))
	case nil:
		return ZoneID{}, errors.New("null zone_id")
	default:
		return ZoneID{}, fmt.Errorf("unsupported zone_id type %T", v)
	}
}

func unsignedZoneID(x uint64) (ZoneID, error) {
	if x > math.MaxInt64 {
		return ZoneID{}, fmt.Errorf("zone_id %d overflows int64", x)
	}
	return IntZoneID(int64(x)), nil
}

func integralZoneID(x float64) (ZoneID, error) {
	if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
		return ZoneID{}, fmt.Errorf("non-integral zone_id %v", x)
	}
	return IntZoneID(int64(x)), nil
}
