package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ZoneID identifies a danger zone. Warehouse tables key zones by either a
// string or an integer; the original kind is kept so JSON output matches the
// source column. ZoneID is comparable and safe to use as a map key.
type ZoneID struct {
	text    string
	num     int64
	numeric bool
}

// StringZoneID returns a textual zone identifier.
func StringZoneID(s string) ZoneID {
	return ZoneID{text: s}
}

// IntZoneID returns a numeric zone identifier.
func IntZoneID(n int64) ZoneID {
	return ZoneID{num: n, numeric: true}
}

// IsNumeric reports whether the identifier came from an integer column.
func (z ZoneID) IsNumeric() bool { return z.numeric }

func (z ZoneID) String() string {
	if z.numeric {
		return strconv.FormatInt(z.num, 10)
	}
	return z.text
}

func (z ZoneID) MarshalJSON() ([]byte, error) {
	if z.numeric {
		return strconv.AppendInt(nil, z.num, 10), nil
	}
	return json.Marshal(z.text)
}

func (z *ZoneID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = StringZoneID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("zone_id %s: not a string or integer", data)
	}
	*z = IntZoneID(n)
	return nil
}
