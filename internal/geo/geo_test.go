package geo

import (
	"reflect"
	"testing"
)

const atlas = `{
  "type": "Topology",
  "objects": {
    "countries": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "arcs": [[0]], "id": "242", "properties": {"name": "Fiji"}},
        {"type": "Polygon", "arcs": [[1]], "id": "834", "properties": {"name": "Tanzania"}},
        {"type": "Polygon", "arcs": [[2]], "properties": {}},
        {"type": "Polygon", "arcs": [[3]], "id": "242", "properties": {"name": "Fiji"}}
      ]
    }
  },
  "arcs": []
}`

func TestCountryNames(t *testing.T) {
	names, err := CountryNames([]byte(atlas))
	if err != nil {
		t.Fatalf("country names: %v", err)
	}
	want := []string{"Fiji", "Tanzania"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestCountryNamesRejectsOtherDocuments(t *testing.T) {
	if _, err := CountryNames([]byte(`{"type":"FeatureCollection"}`)); err == nil {
		t.Fatalf("expected error for non-topology document")
	}
	if _, err := CountryNames([]byte(`{"type":"Topology","objects":{}}`)); err == nil {
		t.Fatalf("expected error for missing countries object")
	}
	if _, err := CountryNames([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestUnmatched(t *testing.T) {
	got := Unmatched([]string{"Fiji", "Atlantis"}, []string{"Fiji", "Tanzania"})
	if !reflect.DeepEqual(got, []string{"Atlantis"}) {
		t.Fatalf("unexpected unmatched targets: %v", got)
	}
}
