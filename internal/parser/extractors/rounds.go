package extractors

import "strings"

const (
	markerToken = "***"

	// HoleCards is the round every valid hand opens with.
	HoleCards = "HOLE CARDS"
)

// RoundMarker is one "*** NAME ***" line of a hand.
type RoundMarker struct {
	Name string
	Line int
	// Tail is whatever follows the closing marker, e.g. "[th 7c 2d]".
	Tail string
}

// RoundIndex maps round names to the line of their marker, in encounter order.
type RoundIndex struct {
	markers []RoundMarker
	byName  map[string]int
}

// Window is the half-open line range [Start, End) holding a round's actions.
type Window struct {
	Marker RoundMarker
	Start  int
	End    int
}

// IndexRounds scans a hand for marker lines and records where each round starts.
// A hand without markers, or with a round name repeated, is rejected.
func IndexRounds(lines []string) (RoundIndex, error) {
	idx := RoundIndex{byName: make(map[string]int)}

	for i, line := range lines {
		if !strings.HasPrefix(line, markerToken) {
			continue
		}
		parts := strings.SplitN(line, markerToken, 3)
		name := strings.TrimSpace(parts[1])
		tail := ""
		if len(parts) == 3 {
			tail = strings.TrimSpace(parts[2])
		}
		if name == "" {
			return RoundIndex{}, lineErr(ErrMalformedLog, i, line, "round marker has no name")
		}
		if prev, dup := idx.byName[name]; dup {
			return RoundIndex{}, lineErr(ErrMalformedLog, i, line, "round %q already started at line %d", name, idx.markers[prev].Line)
		}
		idx.byName[name] = len(idx.markers)
		idx.markers = append(idx.markers, RoundMarker{Name: name, Line: i, Tail: tail})
	}

	if len(idx.markers) == 0 {
		return RoundIndex{}, lineErr(ErrMissingRounds, -1, "", "hand has no round markers")
	}
	return idx, nil
}

// Line returns the marker line of the named round.
func (r RoundIndex) Line(name string) (int, bool) {
	i, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return r.markers[i].Line, true
}

// Names returns the round names in encounter order.
func (r RoundIndex) Names() []string {
	names := make([]string, len(r.markers))
	for i, m := range r.markers {
		names[i] = m.Name
	}
	return names
}

// Markers returns a copy of the markers in encounter order.
func (r RoundIndex) Markers() []RoundMarker {
	return append([]RoundMarker(nil), r.markers...)
}

// Len returns the number of rounds.
func (r RoundIndex) Len() int {
	return len(r.markers)
}

// First returns the line of the first marker.
func (r RoundIndex) First() int {
	if len(r.markers) == 0 {
		return 0
	}
	return r.markers[0].Line
}

// Windows pairs each marker with the next one in a single pass. The last
// window runs to total, the length of the hand's line array.
func (r RoundIndex) Windows(total int) []Window {
	windows := make([]Window, len(r.markers))
	for i, m := range r.markers {
		end := total
		if i+1 < len(r.markers) {
			end = r.markers[i+1].Line
		}
		windows[i] = Window{Marker: m, Start: m.Line + 1, End: end}
	}
	return windows
}

// anchor returns the HOLE CARDS marker line or a typed error.
func (r RoundIndex) anchor(kind error) (int, error) {
	line, ok := r.Line(HoleCards)
	if !ok {
		return 0, lineErr(kind, -1, "", "round %q not found", HoleCards)
	}
	return line, nil
}
