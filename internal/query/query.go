// Package query is the filter/sort engine for the overview page. It is pure:
// an explicit State plus the full collection in, the visible ordered subset
// out. All rendering state lives in the State so a view is reproducible from
// its URL alone.
package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

// SessionAll is the identity session filter.
const SessionAll = "all"

// Missing-value sort sentinels. Papers without a parseable value for the
// active numeric column sort last ascending, first descending.
const (
	sentinelProcess = 999
	sentinelArea    = 999
	sentinelPower   = 999999
)

// State is the complete overview view state. The zero value plus
// Session=SessionAll shows everything unsorted.
type State struct {
	Session        string
	Process        string
	Application    string
	InnovationType string
	AnalyticalTags []string
	Search         string

	SortCol  string
	SortDesc bool
}

// DefaultState returns the identity state.
func DefaultState() State {
	return State{Session: SessionAll}
}

// ParseState decodes a State from URL query values.
func ParseState(v url.Values) State {
	s := State{
		Session:        v.Get("session"),
		Process:        v.Get("process"),
		Application:    v.Get("application"),
		InnovationType: v.Get("innovation"),
		Search:         v.Get("q"),
		SortCol:        v.Get("sort"),
		SortDesc:       v.Get("dir") == "desc",
	}
	if s.Session == "" {
		s.Session = SessionAll
	}
	for _, tag := range v["tags"] {
		if tag != "" {
			s.AnalyticalTags = append(s.AnalyticalTags, tag)
		}
	}
	return s
}

// Values encodes the state back into URL query values, omitting defaults so
// links stay short.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Session != "" && s.Session != SessionAll {
		v.Set("session", s.Session)
	}
	if s.Process != "" {
		v.Set("process", s.Process)
	}
	if s.Application != "" {
		v.Set("application", s.Application)
	}
	if s.InnovationType != "" {
		v.Set("innovation", s.InnovationType)
	}
	for _, tag := range s.AnalyticalTags {
		v.Add("tags", tag)
	}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	if s.SortCol != "" {
		v.Set("sort", s.SortCol)
		if s.SortDesc {
			v.Set("dir", "desc")
		}
	}
	return v
}

// Encode returns the overview URL for this state.
func (s State) Encode() string {
	q := s.Values().Encode()
	if q == "" {
		return "/"
	}
	return "/?" + q
}

// WithSession returns a copy with the session filter changed.
func (s State) WithSession(session string) State {
	s.Session = session
	return s
}

// ToggleTag returns a copy with the analytical tag added to or removed from
// the selected set.
func (s State) ToggleTag(tag string) State {
	tags := make([]string, 0, len(s.AnalyticalTags)+1)
	found := false
	for _, t := range s.AnalyticalTags {
		if t == tag {
			found = true
			continue
		}
		tags = append(tags, t)
	}
	if !found {
		tags = append(tags, tag)
	}
	s.AnalyticalTags = tags
	return s
}

// ToggleSort returns a copy with the sort column set; clicking the active
// column flips the direction instead.
func (s State) ToggleSort(col string) State {
	if s.SortCol == col {
		s.SortDesc = !s.SortDesc
	} else {
		s.SortCol = col
		s.SortDesc = false
	}
	return s
}

// HasTag reports whether tag is in the selected analytical-tag set.
func (s State) HasTag(tag string) bool {
	for _, t := range s.AnalyticalTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Match reports whether a single paper passes every active predicate.
func (s State) Match(p *catalog.Paper) bool {
	if s.Session != "" && s.Session != SessionAll && p.Session.String() != s.Session {
		return false
	}
	if s.Process != "" && p.ProcessNode.String() != s.Process {
		return false
	}
	if s.Application != "" && p.Application != s.Application {
		return false
	}
	if s.InnovationType != "" && !p.HasInnovationType(s.InnovationType) {
		return false
	}
	if len(s.AnalyticalTags) > 0 && !p.HasAnalyticalTags(s.AnalyticalTags) {
		return false
	}
	if s.Search != "" {
		if !strings.Contains(p.SearchText(), strings.ToLower(s.Search)) {
			return false
		}
	}
	return true
}

// Apply filters the collection through every active predicate and then sorts
// by the active column, if any. The full visible set is returned; pagination
// is the caller's problem.
func Apply(papers []catalog.Paper, s State) []catalog.Paper {
	result := make([]catalog.Paper, 0, len(papers))
	for i := range papers {
		if s.Match(&papers[i]) {
			result = append(result, papers[i])
		}
	}

	if s.SortCol != "" {
		sort.SliceStable(result, func(i, j int) bool {
			ki := sortKey(&result[i], s.SortCol)
			kj := sortKey(&result[j], s.SortCol)
			if s.SortDesc {
				return kj.less(ki)
			}
			return ki.less(kj)
		})
	}
	return result
}

// key is a type-aware sort key: numeric columns compare as floats, text
// columns case-insensitively.
type key struct {
	num     float64
	str     string
	numeric bool
}

func (k key) less(other key) bool {
	if k.numeric {
		return k.num < other.num
	}
	return k.str < other.str
}

func numKey(v catalog.Scalar, sentinel float64) key {
	if f, ok := v.Float(); ok {
		return key{num: f, numeric: true}
	}
	return key{num: sentinel, numeric: true}
}

func strKey(v string) key {
	return key{str: strings.ToLower(v)}
}

func sortKey(p *catalog.Paper, col string) key {
	switch col {
	case "id":
		return numKey(catalog.Scalar(p.ID), 0)
	case "title":
		return strKey(p.Title)
	case "affiliation":
		return strKey(p.Affiliation)
	case "process_node":
		return numKey(p.ProcessNode, sentinelProcess)
	case "die_area_mm2":
		return numKey(p.DieArea(), sentinelArea)
	case "power_mw":
		return numKey(p.Power(), sentinelPower)
	case "target_model":
		return strKey(p.TargetModel)
	default:
		return strKey(rawField(p, col))
	}
}

// rawField resolves an unknown sort column to the raw field of the same
// name, for the string-comparison fallback.
func rawField(p *catalog.Paper, col string) string {
	switch col {
	case "session":
		return p.Session.String()
	case "application":
		return p.Application
	case "energy_efficiency":
		return p.EnergyEfficiency.String()
	case "supply_voltage":
		return p.SupplyVoltage.String()
	case "frequency_mhz":
		return p.FrequencyMHz.String()
	case "abstract":
		return p.Abstract
	default:
		return ""
	}
}

// Options are the filter dropdown choices, always derived from the full
// collection so selecting one option never removes the others.
type Options struct {
	Processes       []string
	Applications    []string
	InnovationTypes []string
	AnalyticalTags  []string
}

// BuildOptions extracts the distinct filter values, sorted.
func BuildOptions(papers []catalog.Paper) Options {
	var o Options
	o.Processes = distinct(papers, func(p *catalog.Paper) []string {
		if v := p.ProcessNode.String(); v != "" {
			return []string{v}
		}
		return nil
	})
	o.Applications = distinct(papers, func(p *catalog.Paper) []string {
		if p.Application != "" {
			return []string{p.Application}
		}
		return nil
	})
	o.InnovationTypes = distinct(papers, func(p *catalog.Paper) []string {
		var types []string
		for _, inn := range p.Innovations {
			if inn.Type != "" {
				types = append(types, inn.Type)
			}
		}
		return types
	})
	o.AnalyticalTags = distinct(papers, func(p *catalog.Paper) []string {
		return p.AnalyticalTags
	})
	return o
}

func distinct(papers []catalog.Paper, extract func(*catalog.Paper) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range papers {
		for _, v := range extract(&papers[i]) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
