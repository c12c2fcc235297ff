package types

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"testing"
)

// ewkbPoint builds the little-endian EWKB bytes Postgres produces for a
// geography(Point,4326) column: SRID flag set on the type, SRID word present.
func ewkbPoint(lng, lat float64) []byte {
	raw := make([]byte, 25)
	raw[0] = 1
	binary.LittleEndian.PutUint32(raw[1:5], 1|ewkbSRIDFlag)
	binary.LittleEndian.PutUint32(raw[5:9], 4326)
	binary.LittleEndian.PutUint64(raw[9:17], math.Float64bits(lng))
	binary.LittleEndian.PutUint64(raw[17:25], math.Float64bits(lat))
	return raw
}

func TestGeographyPointValueEWKT(t *testing.T) {
	g := GeographyPoint{Latitude: 40.76, Longitude: -73.9235}
	v, err := g.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "SRID=4326;POINT(-73.923500 40.760000)" {
		t.Fatalf("unexpected EWKT %q", v)
	}
}

func TestGeographyPointScanText(t *testing.T) {
	var g GeographyPoint
	if err := g.Scan("SRID=4326;POINT(-73.9235 40.76)"); err != nil {
		t.Fatalf("scan ewkt: %v", err)
	}
	if g.Longitude != -73.9235 || g.Latitude != 40.76 {
		t.Fatalf("unexpected point %+v", g)
	}

	if err := g.Scan("POINT(103.8198 1.3521)"); err != nil {
		t.Fatalf("scan wkt: %v", err)
	}
	if g.Longitude != 103.8198 || g.Latitude != 1.3521 {
		t.Fatalf("unexpected point %+v", g)
	}
}

func TestGeographyPointScanWKB(t *testing.T) {
	raw := make([]byte, 21)
	raw[0] = 1
	binary.LittleEndian.PutUint32(raw[1:5], 1)
	binary.LittleEndian.PutUint64(raw[5:13], math.Float64bits(-73.9235))
	binary.LittleEndian.PutUint64(raw[13:21], math.Float64bits(40.76))

	var g GeographyPoint
	if err := g.Scan(raw); err != nil {
		t.Fatalf("scan wkb: %v", err)
	}
	if g.Longitude != -73.9235 || g.Latitude != 40.76 {
		t.Fatalf("unexpected point %+v", g)
	}
}

func TestGeographyPointScanHexEWKB(t *testing.T) {
	encoded := hex.EncodeToString(ewkbPoint(-73.9235, 40.76))

	var g GeographyPoint
	if err := g.Scan([]byte(encoded)); err != nil {
		t.Fatalf("scan hex ewkb: %v", err)
	}
	if g.Longitude != -73.9235 || g.Latitude != 40.76 {
		t.Fatalf("unexpected point %+v", g)
	}
}

func TestGeographyPointScanBinaryEWKB(t *testing.T) {
	var g GeographyPoint
	if err := g.Scan(ewkbPoint(103.8198, 1.3521)); err != nil {
		t.Fatalf("scan ewkb: %v", err)
	}
	if g.Longitude != 103.8198 || g.Latitude != 1.3521 {
		t.Fatalf("unexpected point %+v", g)
	}

	if err := g.Scan(ewkbPoint(-73.9235, 40.76)[:24]); err == nil {
		t.Fatal("expected error for truncated ewkb")
	}
}

func TestGeographyPointScanRejectsGarbage(t *testing.T) {
	var g GeographyPoint
	if err := g.Scan("LINESTRING(0 0, 1 1)"); err == nil {
		t.Fatal("expected error for non-point text")
	}
	if err := g.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if err := g.Scan(nil); err != nil {
		t.Fatalf("nil should reset the point: %v", err)
	}
}
