package server

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paperdeck/paperdeck/internal/catalog"
	"github.com/paperdeck/paperdeck/internal/reader"
)

var orgTypeBadges = map[string]string{
	"academia":      "Academia",
	"industry":      "Industry",
	"research_inst": "Research Inst.",
}

type sidebarItem struct {
	ID     string
	Label  string
	Title  string
	Href   string
	Active bool
}

type sidebarGroup struct {
	Session string
	Items   []sidebarItem
}

type affilView struct {
	Logo       string
	Name       string
	Flag       string
	Badge      string
	BadgeClass string
}

type metaCard struct {
	Label      string
	Value      string
	Values     []catalog.MetricValue
	Affil      *affilView
	Highlight  bool
	Comparison bool
}

type cardView struct {
	Index  string
	Text   string
	TextEN string
	Class  string
}

type pairRow struct {
	Challenge *cardView
	Idea      *cardView
	HasArrow  bool
	Target    string // related idea label, empty for none or dangling
}

type galleryCard struct {
	Label   string
	Caption string
	Image   string
	Href    string
}

type modeView struct {
	Mode   reader.Mode
	Label  string
	Href   string
	Active bool
}

type dotView struct {
	Href   string
	Active bool
}

type slideView struct {
	Image      string
	Label      string
	Paragraphs []string
	Href       string // opens the lightbox at this slide
}

type readerView struct {
	Modes        []modeView
	Mode         reader.Mode
	Slide        *slideView
	Dots         []dotView
	PrevHref     string
	NextHref     string
	Fulltext     []string
	FulltextHTML template.HTML
	FulltextErr  string
	Gallery      []galleryCard
	Empty        bool
}

type lightboxView struct {
	Image     string
	Caption   string
	Label     string
	PrevHref  string
	NextHref  string
	CloseHref string
}

type detailData struct {
	ID          string
	Title       string
	TitleZH     string
	Abstract    string
	Annotation  []catalog.AnnotationSegment
	Sidebar     []sidebarGroup
	Prev        string
	Next        string
	MetaCards   []metaCard
	Benchmarks  []catalog.ModelBenchmark
	Pairs       []pairRow
	Innovations []pillView
	Analytical  []string
	Tags        []string
	Private     bool
	Reader      *readerView
	Placeholder []galleryCard // public-mode caption-only gallery
	Lightbox    *lightboxView
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/paper/")
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	paper, ok := s.col.ByID(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		s.render(w, "notfound.html", map[string]any{"ID": id})
		return
	}

	q := r.URL.Query()
	mode := reader.ParseMode(q.Get("mode"))
	slide, _ := strconv.Atoi(q.Get("slide"))
	lb := -1
	if v := q.Get("lb"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			lb = n
		}
	}

	s.render(w, "detail.html", s.buildDetail(r.Context(), paper, mode, slide, lb))
}

func (s *Server) buildDetail(ctx context.Context, p *catalog.Paper, mode reader.Mode, slide, lb int) detailData {
	data := detailData{
		ID:          p.ID,
		Title:       p.Title,
		TitleZH:     p.TitleZH,
		Abstract:    p.Abstract,
		Sidebar:     s.buildSidebar(p.ID),
		MetaCards:   s.buildMetaCards(p),
		Pairs:       buildPairs(p.Challenges, p.Ideas),
		Analytical:  p.AnalyticalTags,
		Tags:        p.Tags,
		Private:     s.private,
	}
	data.Prev, data.Next = s.col.Adjacent(p.ID)

	if p.TitleAnnotation != nil {
		data.Annotation = p.TitleAnnotation.Segments
	}
	if p.MetricsDetailed.Present() {
		data.Benchmarks = p.MetricsDetailed.ModelBenchmarks
	}
	for _, inn := range p.Innovations {
		data.Innovations = append(data.Innovations, pillView{Label: inn.Tag, Class: typeClass(inn.Type)})
	}

	if s.private {
		data.Reader, data.Lightbox = s.buildReader(ctx, p, mode, slide, lb)
	} else {
		for _, fig := range p.Figures {
			data.Placeholder = append(data.Placeholder, galleryCard{
				Label:   "Fig. " + strconv.Itoa(fig.Num),
				Caption: fig.Caption,
			})
		}
	}
	return data
}

func (s *Server) buildSidebar(currentID string) []sidebarGroup {
	var groups []sidebarGroup
	for _, g := range s.col.SessionGroups() {
		sg := sidebarGroup{Session: "Session " + g.Session}
		for _, p := range g.Papers {
			sg.Items = append(sg.Items, sidebarItem{
				ID:     p.ID,
				Label:  p.ID + " " + truncate(p.Title, 30),
				Title:  p.Title,
				Href:   "/paper/" + p.ID,
				Active: p.ID == currentID,
			})
		}
		groups = append(groups, sg)
	}
	return groups
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (s *Server) buildAffil(p *catalog.Paper) *affilView {
	av := &affilView{Name: p.Affiliation}
	if info := p.AffiliationInfo; info != nil {
		if info.Logo != "" {
			av.Logo = s.resolver.Asset(info.Logo)
		}
		av.Flag = countryFlag(info.CountryCode)
		if info.Type != "" {
			badge, ok := orgTypeBadges[info.Type]
			if !ok {
				badge = info.Type
			}
			av.Badge = badge
			av.BadgeClass = info.Type
		}
	}
	return av
}

// buildMetaCards chooses the card layout: detailed when metrics_detailed
// carried any key at all, the simple flat layout otherwise.
func (s *Server) buildMetaCards(p *catalog.Paper) []metaCard {
	affil := s.buildAffil(p)
	if p.MetricsDetailed.Present() {
		return s.detailedMetaCards(p, affil)
	}
	return s.simpleMetaCards(p, affil)
}

func (s *Server) simpleMetaCards(p *catalog.Paper, affil *affilView) []metaCard {
	var cards []metaCard
	if sess := p.Session.String(); sess != "" {
		cards = append(cards, metaCard{Label: "Session", Value: "Session " + sess})
	}
	cards = append(cards, metaCard{Label: "Affiliation", Affil: affil})

	add := func(label, value string, highlight bool) {
		if value != "" {
			cards = append(cards, metaCard{Label: label, Value: value, Highlight: highlight})
		}
	}
	add("Process", p.Process().String(), false)
	if area := p.DieArea(); area != "" {
		add("Area", formatArea(area), true)
	}
	add("Supply Voltage", p.Voltage().String(), false)
	add("SRAM", p.Metrics.SRAMKB.String(), false)
	if freq := p.Frequency(); freq != "" {
		add("Frequency", freq.String()+" MHz", false)
	}
	if power := p.Power(); power != "" {
		add("Power", power.String()+" mW", false)
	}
	add("Efficiency", p.Efficiency().String(), true)
	add("Throughput", p.Metrics.Throughput.String(), false)
	add("Target Model", p.Model(), false)
	add("Application", p.Application, false)
	return cards
}

func (s *Server) detailedMetaCards(p *catalog.Paper, affil *affilView) []metaCard {
	md := p.MetricsDetailed
	var cards []metaCard

	if sess := p.Session.String(); sess != "" {
		cards = append(cards, metaCard{Label: "Session", Value: "Session " + sess})
	}
	cards = append(cards, metaCard{Label: "Affiliation", Affil: affil})

	// Fields that only ever carry one value.
	simple := []struct {
		field     catalog.DetailedField
		label     string
		fallback  string
		highlight bool
	}{
		{md.Technology, "Process", p.Process().String(), false},
		{md.DieArea, "Area", formatAreaFallback(p.DieArea()), true},
		{md.SRAM, "SRAM", p.Metrics.SRAMKB.String(), false},
		{md.Quantization, "Quantization", "", false},
	}
	for _, sf := range simple {
		value := sf.field.Text.String()
		if value == "" {
			value = sf.fallback
		}
		if value == "" {
			continue
		}
		cards = append(cards, metaCard{Label: sf.label, Value: value, Highlight: sf.highlight})
	}

	// Fields that may carry several values under different conditions. The
	// per-field precedence is simple value, then the multi-value list, then
	// the metrics/legacy fallback.
	multi := []struct {
		field     catalog.DetailedField
		label     string
		fallback  string
		highlight bool
	}{
		{md.SupplyVoltage, "Supply Voltage", p.Voltage().String(), false},
		{md.Frequency, "Frequency", suffixed(p.Frequency(), " MHz"), false},
		{md.Power, "Power", suffixed(p.Power(), " mW"), false},
		{md.EnergyEfficiency, "Efficiency", p.Efficiency().String(), true},
		{md.Throughput, "Throughput", p.Metrics.Throughput.String(), false},
	}
	for _, mf := range multi {
		switch {
		case mf.field.Text != "":
			cards = append(cards, metaCard{Label: mf.label, Value: mf.field.Text.String(), Highlight: mf.highlight})
		case len(mf.field.Values) > 0:
			cards = append(cards, metaCard{Label: mf.label, Values: mf.field.Values, Highlight: mf.highlight})
		case mf.fallback != "":
			cards = append(cards, metaCard{Label: mf.label, Value: mf.fallback, Highlight: mf.highlight})
		}
	}

	if model := p.Model(); model != "" {
		cards = append(cards, metaCard{Label: "Target Model", Value: model})
	}
	if p.Application != "" {
		cards = append(cards, metaCard{Label: "Application", Value: p.Application})
	}
	if md.Comparison != "" {
		cards = append(cards, metaCard{Label: "Comparison", Value: md.Comparison.String(), Comparison: true})
	}
	return cards
}

func suffixed(v catalog.Scalar, unit string) string {
	if v == "" {
		return ""
	}
	return v.String() + unit
}

func formatAreaFallback(v catalog.Scalar) string {
	if v == "" {
		return ""
	}
	return formatArea(v)
}

// buildPairs lays challenges and ideas out as two parallel columns of equal
// length, padded with blank slots. The connector arrow is a visual alignment
// aid only: a related-idea index past the end of ideas renders an empty
// target label, never an error.
func buildPairs(challenges []catalog.Challenge, ideas []catalog.Idea) []pairRow {
	maxLen := len(challenges)
	if len(ideas) > maxLen {
		maxLen = len(ideas)
	}
	rows := make([]pairRow, maxLen)
	for i := 0; i < maxLen; i++ {
		if i < len(challenges) {
			c := challenges[i]
			rows[i].Challenge = &cardView{
				Index:  "C" + strconv.Itoa(i+1),
				Text:   c.Text,
				TextEN: c.TextEN,
			}
			rows[i].HasArrow = true
			if idx := c.RelatedIdeaIdx; idx != nil && *idx >= 0 && *idx < len(ideas) {
				rows[i].Target = "I" + strconv.Itoa(*idx+1)
			}
		}
		if i < len(ideas) {
			idea := ideas[i]
			rows[i].Idea = &cardView{
				Index:  "I" + strconv.Itoa(i+1),
				Text:   idea.Text,
				TextEN: idea.TextEN,
				Class:  ideaTypeClass(idea.Type),
			}
		}
	}
	return rows
}

// detailHref builds a detail-page URL carrying the reader state. lb < 0
// means the lightbox is closed.
func detailHref(id string, mode reader.Mode, slide, lb int) string {
	v := url.Values{}
	if mode != reader.ModePaired {
		v.Set("mode", string(mode))
	}
	if slide > 0 {
		v.Set("slide", strconv.Itoa(slide))
	}
	if lb >= 0 {
		v.Set("lb", strconv.Itoa(lb))
	}
	href := "/paper/" + id
	if q := v.Encode(); q != "" {
		href += "?" + q
	}
	return href
}
