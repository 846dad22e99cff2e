// Package geo reads country names from a world-atlas TopoJSON file.
package geo

import (
	"encoding/json"
	"fmt"
)

type topology struct {
	Type    string `json:"type"`
	Objects map[string]struct {
		Geometries []struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"geometries"`
	} `json:"objects"`
}

// CountryNames returns the country display names in file order. Geometries
// without a name are skipped and duplicates are dropped.
func CountryNames(data []byte) ([]string, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("failed to decode topojson: %w", err)
	}
	if topo.Type != "Topology" {
		return nil, fmt.Errorf("unexpected topojson type %q", topo.Type)
	}
	countries, ok := topo.Objects["countries"]
	if !ok {
		return nil, fmt.Errorf("topojson has no countries object")
	}
	seen := make(map[string]bool, len(countries.Geometries))
	names := make([]string, 0, len(countries.Geometries))
	for _, g := range countries.Geometries {
		name := g.Properties.Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// Unmatched returns the highlight targets that do not appear in names. An
// empty result means every target can be drawn.
func Unmatched(targets, names []string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	var out []string
	for _, t := range targets {
		if !known[t] {
			out = append(out, t)
		}
	}
	return out
}
