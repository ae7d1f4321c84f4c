// Package geo maps free-text region names to standardized county codes for
// choropleth aggregation. Region names in the application data do not always
// match the boundary dataset exactly (diacritics, abbreviations, legal
// suffixes), so matching is similarity-based with an explicit threshold.
package geo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the minimum normalized similarity for a candidate to be
// accepted. Below it a name reports as unmatched rather than taking the
// nearest code.
const MatchThreshold = 0.6

// codeProperty is the boundary-feature property carrying the standardized
// county code.
const codeProperty = "ref:se:länskod"

// CodeMap maps a canonical region display name to its county code. Built
// once from boundary data and read-only afterwards.
type CodeMap map[string]string

// Match is the outcome of matching one region name. A miss (OK false) is a
// normal result, never an error.
type Match struct {
	Name       string  `json:"name"`
	Code       string  `json:"code,omitempty"`
	Candidate  string  `json:"candidate,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	OK         bool    `json:"ok"`
}

type featureCollection struct {
	Features []struct {
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

// BuildCodeMap extracts name → code from every labeled boundary feature of
// a GeoJSON document. Features without a name are skipped.
func BuildCodeMap(geojson []byte) (CodeMap, error) {
	var fc featureCollection
	if err := json.Unmarshal(geojson, &fc); err != nil {
		return nil, fmt.Errorf("parse boundary geojson: %w", err)
	}
	m := make(CodeMap, len(fc.Features))
	for _, feat := range fc.Features {
		name, _ := feat.Properties["name"].(string)
		if name == "" {
			continue
		}
		code, _ := feat.Properties[codeProperty].(string)
		m[name] = code
	}
	return m, nil
}

// Names returns the map's keys in sorted order. The sorted order is what
// makes tie-breaking between equally similar candidates stable across runs.
func (m CodeMap) Names() []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MatchRegionCodes matches each input name against the code map, returning
// one result per input in order. Names with no candidate at or above the
// threshold come back as misses, never as an arbitrary default code.
func MatchRegionCodes(names []string, m CodeMap) []Match {
	keys := m.Names()
	out := make([]Match, len(names))
	for i, name := range names {
		out[i] = matchOne(name, keys, m)
	}
	return out
}

func matchOne(name string, sortedKeys []string, m CodeMap) Match {
	best := Match{Name: name}
	for _, key := range sortedKeys {
		sim := Similarity(name, key)
		// Strictly-greater keeps the first candidate in sorted order on
		// ties, so equally similar candidates resolve identically every run.
		if sim > best.Similarity {
			best.Similarity = sim
			best.Candidate = key
		}
	}
	if best.Candidate == "" || best.Similarity < MatchThreshold {
		return Match{Name: name}
	}
	best.Code = m[best.Candidate]
	best.OK = true
	return best
}

// Similarity is edit distance normalized over the combined length,
// (la+lb-d)/(la+lb). For pure insertions this equals the classic
// sequence-matcher ratio, which matters here: a bare county name against its
// "... län" form must land above the threshold.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	total := la + lb
	if total == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(total-d) / float64(total)
}
