// Package stats derives aggregate distributions from the full paper
// collection. Every view here characterizes the whole corpus: active
// overview filters never feed into it.
package stats

import (
	"math"
	"sort"
	"strconv"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

// Bucket colors cycle through this palette in display order.
var barPalette = []string{
	"#58a6ff", "#3498db", "#2ecc71", "#e67e22",
	"#e74c3c", "#9b59b6", "#f1c40f", "#1abc9c",
}

// Fixed per-session colors for the session histogram.
var sessionColors = map[string]string{
	"2":  "#58a6ff",
	"10": "#e74c3c",
	"18": "#2ecc71",
	"30": "#e67e22",
	"31": "#9b59b6",
}

const defaultBarColor = "#58a6ff"

// Bucket is one histogram entry. Width is the bar width as a percentage of
// the largest bucket.
type Bucket struct {
	Label string
	Count int
	Width float64
	Color string
}

// ProcessHistogram counts papers per process node, missing node bucketed as
// "N/A", ordered by increasing numeric node size.
func ProcessHistogram(papers []catalog.Paper) []Bucket {
	counts := make(map[string]int)
	for i := range papers {
		node := papers[i].ProcessNode.String()
		if node == "" {
			node = "N/A"
		}
		counts[node]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for label, n := range counts {
		buckets = append(buckets, Bucket{Label: label, Count: n})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return nodeSize(buckets[i].Label) < nodeSize(buckets[j].Label)
	})

	scale(buckets)
	for i := range buckets {
		buckets[i].Color = barPalette[i%len(barPalette)]
	}
	return buckets
}

// nodeSize parses a process-node label for ordering; unparseable labels
// ("N/A") sort last.
func nodeSize(label string) float64 {
	if f, ok := catalog.Scalar(label).Float(); ok {
		return f
	}
	return 999
}

// SessionHistogram counts papers per session, labeled "S<n>", ordered by
// increasing session number.
func SessionHistogram(papers []catalog.Paper) []Bucket {
	counts := make(map[string]int)
	for i := range papers {
		counts[papers[i].Session.String()]++
	}

	type entry struct {
		session string
		count   int
	}
	entries := make([]entry, 0, len(counts))
	for s, n := range counts {
		entries = append(entries, entry{s, n})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, _ := strconv.Atoi(entries[i].session)
		b, _ := strconv.Atoi(entries[j].session)
		return a < b
	})

	buckets := make([]Bucket, len(entries))
	for i, e := range entries {
		color, ok := sessionColors[e.session]
		if !ok {
			color = defaultBarColor
		}
		buckets[i] = Bucket{Label: "S" + e.session, Count: e.count, Color: color}
	}
	scale(buckets)
	return buckets
}

func scale(buckets []Bucket) {
	max := 0
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	if max == 0 {
		return
	}
	for i := range buckets {
		buckets[i].Width = float64(buckets[i].Count) / float64(max) * 100
	}
}

// DonutRadius fixes the donut geometry; every arc length is computed against
// the resulting circumference.
const DonutRadius = 42.0

// Circumference of the donut ring.
func Circumference() float64 {
	return 2 * math.Pi * DonutRadius
}

// Segment is one donut arc. Length and Offset are in circumference units;
// segments are laid out consecutively starting at a fixed -90° rotation.
type Segment struct {
	Key    string
	Label  string
	Count  int
	Color  string
	Length float64
	Offset float64
}

// Donut is a proportional ring chart over one categorical distribution,
// largest segment first.
type Donut struct {
	Segments []Segment
	Total    int
}

var orgTypeLabels = map[string]string{
	"academia":      "Academia",
	"industry":      "Industry",
	"research_inst": "Research Inst.",
	"unknown":       "Unknown",
}

var orgTypeColors = map[string]string{
	"academia":      "#58a6ff",
	"industry":      "#e74c3c",
	"research_inst": "#2ecc71",
	"unknown":       "#6e7681",
}

// OrgTypeDonut distributes papers over affiliation organization types.
func OrgTypeDonut(papers []catalog.Paper) Donut {
	counts := make(map[string]int)
	for i := range papers {
		t := "unknown"
		if info := papers[i].AffiliationInfo; info != nil && info.Type != "" {
			t = info.Type
		}
		counts[t]++
	}

	segs := make([]Segment, 0, len(counts))
	for k, n := range counts {
		label, ok := orgTypeLabels[k]
		if !ok {
			label = k
		}
		color, ok := orgTypeColors[k]
		if !ok {
			color = "#6e7681"
		}
		segs = append(segs, Segment{Key: k, Label: label, Color: color, Count: n})
	}
	return buildDonut(segs)
}

var countryPalette = []string{
	"#58a6ff", "#e74c3c", "#2ecc71", "#e67e22", "#9b59b6", "#f1c40f",
	"#1abc9c", "#3498db", "#e91e63", "#00bcd4", "#ff9800", "#8bc34a",
}

// CountryDonut distributes papers over affiliation countries. Colors are
// assigned by rank order, cycling the palette when countries outnumber it.
func CountryDonut(papers []catalog.Paper) Donut {
	counts := make(map[string]int)
	for i := range papers {
		c := "Unknown"
		if info := papers[i].AffiliationInfo; info != nil && info.Country != "" {
			c = info.Country
		}
		counts[c]++
	}

	segs := make([]Segment, 0, len(counts))
	for k, n := range counts {
		segs = append(segs, Segment{Key: k, Label: k, Count: n})
	}
	d := buildDonut(segs)
	for i := range d.Segments {
		d.Segments[i].Color = countryPalette[i%len(countryPalette)]
	}
	return d
}

// buildDonut orders segments largest first (ties by key for determinism) and
// lays their arcs out consecutively.
func buildDonut(segs []Segment) Donut {
	sort.SliceStable(segs, func(i, j int) bool {
		if segs[i].Count != segs[j].Count {
			return segs[i].Count > segs[j].Count
		}
		return segs[i].Key < segs[j].Key
	})

	total := 0
	for _, s := range segs {
		total += s.Count
	}

	circ := Circumference()
	offset := 0.0
	for i := range segs {
		if total > 0 {
			segs[i].Length = float64(segs[i].Count) / float64(total) * circ
		}
		segs[i].Offset = offset
		offset += segs[i].Length
	}
	return Donut{Segments: segs, Total: total}
}
