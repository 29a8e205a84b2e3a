package catalog

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Paper is one entry in the proceedings dataset. The dataset is authored
// loosely: most fields are optional and several metric fields may appear at
// the top level (legacy), under Metrics, or under MetricsDetailed. Resolution
// precedence is MetricsDetailed > Metrics > top level; see Resolve.
type Paper struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	TitleZH  string `json:"title_zh"`
	Abstract string `json:"abstract"`
	Session  Scalar `json:"session"`

	Affiliation     string           `json:"affiliation"`
	AffiliationInfo *AffiliationInfo `json:"affiliation_info"`

	// Legacy top-level metric fields, superseded by Metrics when present.
	ProcessNode      Scalar `json:"process_node"`
	DieAreaMM2       Scalar `json:"die_area_mm2"`
	SupplyVoltage    Scalar `json:"supply_voltage"`
	FrequencyMHz     Scalar `json:"frequency_mhz"`
	PowerMW          Scalar `json:"power_mw"`
	EnergyEfficiency Scalar `json:"energy_efficiency"`
	TargetModel      string `json:"target_model"`
	Application      string `json:"application"`

	Metrics         Metrics          `json:"metrics"`
	MetricsDetailed *MetricsDetailed `json:"metrics_detailed"`

	Figures        []Figure     `json:"figures"`
	Innovations    []Innovation `json:"innovations"`
	Tags           []string     `json:"tags"`
	AnalyticalTags []string     `json:"analytical_tags"`

	Challenges []Challenge `json:"challenges"`
	Ideas      []Idea      `json:"ideas"`

	TitleAnnotation *TitleAnnotation `json:"title_annotation"`
}

// AffiliationInfo is optional structured data about a paper's affiliation.
type AffiliationInfo struct {
	Logo        string `json:"logo"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"` // "academia", "industry" or "research_inst"
}

// Metrics is the structured metric object that supersedes the legacy
// top-level fields.
type Metrics struct {
	Technology       Scalar `json:"technology"`
	DieAreaMM2       Scalar `json:"die_area_mm2"`
	SRAMKB           Scalar `json:"sram_kb"`
	SupplyVoltage    Scalar `json:"supply_voltage"`
	FrequencyMHz     Scalar `json:"frequency_mhz"`
	PowerMW          Scalar `json:"power_mw"`
	EnergyEfficiency Scalar `json:"energy_efficiency"`
	Throughput       Scalar `json:"throughput"`
	TargetModel      string `json:"target_model"`
}

// MetricValue is one measurement together with the condition it was taken
// under ("0.56V", "peak", ...).
type MetricValue struct {
	Value     Scalar `json:"value"`
	Condition string `json:"condition"`
}

// DetailedField is a metrics_detailed entry. The dataset writes these either
// as a plain scalar or as {"values": [{value, condition}, ...]}.
type DetailedField struct {
	Text   Scalar
	Values []MetricValue
}

// UnmarshalJSON accepts a scalar, or an object carrying a "values" list.
func (f *DetailedField) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Values []MetricValue `json:"values"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		f.Values = obj.Values
		return nil
	}
	return json.Unmarshal(b, &f.Text)
}

// Empty reports whether the field carries neither a scalar nor values.
func (f DetailedField) Empty() bool {
	return f.Text == "" && len(f.Values) == 0
}

// ModelBenchmark is one row of the per-model benchmark table.
type ModelBenchmark struct {
	Model  string `json:"model"`
	Metric string `json:"metric"`
	Detail string `json:"detail"`
}

// MetricsDetailed is the richest metric layer. Its mere presence (any key at
// all in the source object) switches the detail page to the detailed card
// layout, so unmarshalling records whether the object was non-empty.
type MetricsDetailed struct {
	Technology   DetailedField `json:"technology"`
	DieArea      DetailedField `json:"die_area"`
	SRAM         DetailedField `json:"sram"`
	Quantization DetailedField `json:"quantization"`

	SupplyVoltage    DetailedField `json:"supply_voltage"`
	Frequency        DetailedField `json:"frequency"`
	Power            DetailedField `json:"power"`
	EnergyEfficiency DetailedField `json:"energy_efficiency"`
	Throughput       DetailedField `json:"throughput"`

	Comparison      Scalar           `json:"comparison"`
	ModelBenchmarks []ModelBenchmark `json:"model_benchmarks"`

	keyed bool
}

// mdAlias avoids recursing into MetricsDetailed.UnmarshalJSON.
type mdAlias MetricsDetailed

func (m *MetricsDetailed) UnmarshalJSON(b []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	var a mdAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*m = MetricsDetailed(a)
	m.keyed = len(keys) > 0
	return nil
}

// Present reports whether the source carried a metrics_detailed object with
// at least one key. Unknown keys count: the authoring pipeline adds fields
// faster than the viewer learns about them.
func (m *MetricsDetailed) Present() bool {
	return m != nil && m.keyed
}

// Figure is one numbered illustration.
type Figure struct {
	Num     int    `json:"num"`
	Path    string `json:"path"`
	Caption string `json:"caption"`
}

// Innovation is a tagged contribution claim.
type Innovation struct {
	Tag  string `json:"tag"`
	Type string `json:"type"` // hw-arch, hw-circuit, sw, co-design, system
}

// Challenge is one entry of the challenge/idea pairing. RelatedIdeaIdx is an
// unvalidated index into Ideas and may point past the end.
type Challenge struct {
	Text           string `json:"text"`
	TextEN         string `json:"text_en"`
	RelatedIdeaIdx *int   `json:"related_idea_idx"`
}

// Idea is one entry of the idea column.
type Idea struct {
	Text   string `json:"text"`
	TextEN string `json:"text_en"`
	Type   string `json:"type"`
}

// TitleAnnotation is the character-gloss display for a title.
type TitleAnnotation struct {
	Segments []AnnotationSegment `json:"segments"`
}

// AnnotationSegment is one glossed fragment.
type AnnotationSegment struct {
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
	Color   string `json:"color"`
}

// Scalar is a JSON value that the dataset writes inconsistently as a string
// or a number ("28nm" vs 28, "5" vs 5.0). It normalizes to its string form
// at decode time so downstream code sees one shape.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	t := strings.TrimSpace(string(b))
	if t == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(t, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	*s = Scalar(t)
	return nil
}

func (s Scalar) String() string { return string(s) }

// Float parses the scalar's leading numeric value. "28nm" parses as 28,
// matching the loose numeric comparisons the dataset was authored against.
func (s Scalar) Float() (float64, bool) {
	t := strings.TrimSpace(string(s))
	if t == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f, true
	}
	end := 0
	for end < len(t) {
		c := t[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(t[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Resolve returns the first non-empty value. It is the single precedence
// helper for the detailed > metrics > legacy field layering.
func Resolve(vals ...Scalar) Scalar {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Process is the display process node: Metrics.Technology over the legacy
// top-level field.
func (p *Paper) Process() Scalar {
	return Resolve(p.Metrics.Technology, p.ProcessNode)
}

// DieArea is the display die area in mm².
func (p *Paper) DieArea() Scalar {
	return Resolve(p.Metrics.DieAreaMM2, p.DieAreaMM2)
}

// Power is the display power in mW.
func (p *Paper) Power() Scalar {
	return Resolve(p.Metrics.PowerMW, p.PowerMW)
}

// Efficiency is the display energy efficiency.
func (p *Paper) Efficiency() Scalar {
	return Resolve(p.Metrics.EnergyEfficiency, p.EnergyEfficiency)
}

// Model is the display target model.
func (p *Paper) Model() string {
	if p.Metrics.TargetModel != "" {
		return p.Metrics.TargetModel
	}
	return p.TargetModel
}

// Voltage is the display supply voltage.
func (p *Paper) Voltage() Scalar {
	return Resolve(p.Metrics.SupplyVoltage, p.SupplyVoltage)
}

// Frequency is the display clock frequency in MHz.
func (p *Paper) Frequency() Scalar {
	return Resolve(p.Metrics.FrequencyMHz, p.FrequencyMHz)
}

// HasInnovationType reports whether any innovation carries the given type.
func (p *Paper) HasInnovationType(typ string) bool {
	for _, inn := range p.Innovations {
		if inn.Type == typ {
			return true
		}
	}
	return false
}

// HasAnalyticalTags reports whether the paper's analytical tags are a
// superset of all the given tags.
func (p *Paper) HasAnalyticalTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range p.AnalyticalTags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SearchText is the haystack for free-text search: title, Chinese title,
// affiliation and the space-joined free-form tags, lowercased.
func (p *Paper) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		p.Title, p.TitleZH, p.Affiliation, strings.Join(p.Tags, " "),
	}, " "))
}

// normalize applies the defaulting rules once at load so downstream
// components can assume the shapes they read.
func (p *Paper) normalize() {
	if p.Figures == nil {
		p.Figures = []Figure{}
	}
	if p.Innovations == nil {
		p.Innovations = []Innovation{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.AnalyticalTags == nil {
		p.AnalyticalTags = []string{}
	}
	if p.Challenges == nil {
		p.Challenges = []Challenge{}
	}
	if p.Ideas == nil {
		p.Ideas = []Idea{}
	}
}
