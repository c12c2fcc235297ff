package types

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EWKB type flags. PostGIS sets the SRID flag on every geography column read.
const (
	ewkbSRIDFlag = 0x20000000
	ewkbZFlag    = 0x80000000
	ewkbMFlag    = 0x40000000
	ewkbTypeMask = 0x0000FFFF
)

// GeographyPoint represents a PostGIS Point stored as geography(Point,4326).
type GeographyPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Value produces an EWKT literal so Postgres can cast the geography.
func (g GeographyPoint) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", g.Longitude, g.Latitude), nil
}

// Scan accepts WKT/EWKT or WKB bytes returned by Postgres.
func (g *GeographyPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeographyPoint{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return g.fromText(v)
	case []byte:
		text := strings.TrimSpace(string(v))
		upper := strings.ToUpper(text)
		if strings.HasPrefix(upper, "SRID=") || strings.HasPrefix(upper, "POINT(") {
			return g.fromText(text)
		}
		return g.fromWKB(v)
	default:
		if stringer, ok := value.(fmt.Stringer); ok {
			return g.fromText(stringer.String())
		}
		return fmt.Errorf("geography: unsupported scan type %T", value)
	}
}

func (g *GeographyPoint) fromText(raw string) error {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToUpper(raw), "SRID=") {
		if idx := strings.Index(raw, ";"); idx != -1 {
			raw = raw[idx+1:]
		}
	}

	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToUpper(raw), "POINT(") || !strings.HasSuffix(raw, ")") {
		return fmt.Errorf("geography: unsupported text %q", raw)
	}

	content := strings.TrimSpace(raw[len("POINT(") : len(raw)-1])
	segments := strings.Fields(content)
	if len(segments) != 2 {
		return fmt.Errorf("geography: unexpected POINT content %q", content)
	}

	lng, err := parseCoordinate(segments[0])
	if err != nil {
		return err
	}
	lat, err := parseCoordinate(segments[1])
	if err != nil {
		return err
	}

	g.Longitude = lng
	g.Latitude = lat
	return nil
}

// fromWKB decodes WKB or EWKB point bytes. Postgres sends geography columns
// over the wire as hex-encoded EWKB with the SRID flag set, so the hex form is
// tried first; plain binary input fails the hex decode and is used as-is.
func (g *GeographyPoint) fromWKB(raw []byte) error {
	if len(raw) >= 2 && raw[0] == '0' {
		if decoded, err := hex.DecodeString(string(raw)); err == nil {
			raw = decoded
		}
	}

	if len(raw) < 21 {
		return fmt.Errorf("geography: wkb too short")
	}

	var order binary.ByteOrder
	switch raw[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return fmt.Errorf("geography: invalid byte order %d", raw[0])
	}

	geomType := order.Uint32(raw[1:5])
	if geomType&(ewkbZFlag|ewkbMFlag) != 0 {
		return fmt.Errorf("geography: unsupported point dimensions in type %#x", geomType)
	}
	if geomType&ewkbTypeMask != 1 {
		return fmt.Errorf("geography: unexpected geometry type %d", geomType&ewkbTypeMask)
	}

	offset := 5
	if geomType&ewkbSRIDFlag != 0 {
		offset += 4
	}
	if len(raw) < offset+16 {
		return fmt.Errorf("geography: wkb too short")
	}

	g.Longitude = math.Float64frombits(order.Uint64(raw[offset : offset+8]))
	g.Latitude = math.Float64frombits(order.Uint64(raw[offset+8 : offset+16]))
	return nil
}

func parseCoordinate(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("geography: empty coordinate")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("geography: parse coordinate %w", err)
	}
	return f, nil
}
