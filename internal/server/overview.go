package server

import (
	"net/http"

	"github.com/paperdeck/paperdeck/internal/catalog"
	"github.com/paperdeck/paperdeck/internal/query"
)

// sessionTabs is the fixed tab list: All plus the five proceedings sessions.
var sessionTabs = []struct {
	Key   string
	Label string
}{
	{"all", "All"},
	{"2", "Session 2"},
	{"10", "Session 10"},
	{"18", "Session 18"},
	{"30", "Session 30"},
	{"31", "Session 31"},
}

// columnDefs drive the comparison-table header.
var columnDefs = []struct {
	Key      string
	Label    string
	Sortable bool
}{
	{"id", "#", true},
	{"title", "Title", true},
	{"affiliation", "Affiliation", true},
	{"process_node", "Process", true},
	{"die_area_mm2", "Area", true},
	{"power_mw", "Power", true},
	{"energy_efficiency", "Efficiency", false},
	{"target_model", "Target Model", true},
	{"innovations", "Innovations", false},
}

type tabView struct {
	Label  string
	Href   string
	Active bool
}

type optionView struct {
	Value    string
	Selected bool
}

type hiddenField struct {
	Name  string
	Value string
}

type filtersView struct {
	Processes       []optionView
	Applications    []optionView
	InnovationTypes []optionView
	Search          string
	Hidden          []hiddenField
}

type tagView struct {
	Tag    string
	Href   string
	Active bool
}

type columnView struct {
	Label    string
	Sortable bool
	Href     string
	Arrow    string
	Active   bool
}

type pillView struct {
	Label string
	Class string
}

type rowView struct {
	ID          string
	Href        string
	Title       string
	TitleZH     string
	Affiliation string
	Logo        string
	Flag        string
	Process     string
	Area        catalog.Scalar
	Power       catalog.Scalar
	Efficiency  string
	Model       string
	Innovations []pillView
}

type overviewData struct {
	Tabs       []tabView
	Filters    filtersView
	TagButtons []tagView
	Stats      statsView
	Columns    []columnView
	Rows       []rowView
	Shown      int
	Total      int
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	state := query.ParseState(r.URL.Query())
	visible := query.Apply(s.col.Papers(), state)
	s.render(w, "overview.html", s.buildOverview(state, visible))
}

func (s *Server) buildOverview(state query.State, visible []catalog.Paper) overviewData {
	data := overviewData{
		Stats: s.stats,
		Shown: len(visible),
		Total: s.col.Len(),
	}

	for _, tab := range sessionTabs {
		data.Tabs = append(data.Tabs, tabView{
			Label:  tab.Label,
			Href:   state.WithSession(tab.Key).Encode(),
			Active: state.Session == tab.Key,
		})
	}

	data.Filters = filtersView{
		Processes:       options(s.options.Processes, state.Process),
		Applications:    options(s.options.Applications, state.Application),
		InnovationTypes: options(s.options.InnovationTypes, state.InnovationType),
		Search:          state.Search,
		Hidden:          hiddenState(state),
	}

	for _, tag := range s.options.AnalyticalTags {
		data.TagButtons = append(data.TagButtons, tagView{
			Tag:    tag,
			Href:   state.ToggleTag(tag).Encode(),
			Active: state.HasTag(tag),
		})
	}

	for _, col := range columnDefs {
		cv := columnView{Label: col.Label, Sortable: col.Sortable}
		if col.Sortable {
			cv.Active = state.SortCol == col.Key
			cv.Href = state.ToggleSort(col.Key).Encode()
			cv.Arrow = "▲"
			if cv.Active && state.SortDesc {
				cv.Arrow = "▼"
			}
		}
		data.Columns = append(data.Columns, cv)
	}

	for i := range visible {
		data.Rows = append(data.Rows, s.buildRow(&visible[i]))
	}
	return data
}

func (s *Server) buildRow(p *catalog.Paper) rowView {
	row := rowView{
		ID:          p.ID,
		Href:        "/paper/" + p.ID,
		Title:       p.Title,
		TitleZH:     p.TitleZH,
		Affiliation: p.Affiliation,
		Process:     p.Process().String(),
		Area:        p.DieArea(),
		Power:       p.Power(),
		Efficiency:  p.Efficiency().String(),
		Model:       p.Model(),
	}
	if info := p.AffiliationInfo; info != nil {
		if info.Logo != "" {
			row.Logo = s.resolver.Asset(info.Logo)
		}
		row.Flag = countryFlag(info.CountryCode)
	}
	for _, inn := range p.Innovations {
		row.Innovations = append(row.Innovations, pillView{Label: inn.Tag, Class: typeClass(inn.Type)})
	}
	return row
}

// options marks the selected value in a dropdown's choices.
func options(values []string, selected string) []optionView {
	out := make([]optionView, len(values))
	for i, v := range values {
		out[i] = optionView{Value: v, Selected: v == selected}
	}
	return out
}

// hiddenState carries the state the filter form does not own through a form
// submit: session, tag selection and sort survive a dropdown change.
func hiddenState(state query.State) []hiddenField {
	var fields []hiddenField
	v := state.Values()
	for _, name := range []string{"session", "tags", "sort", "dir"} {
		for _, val := range v[name] {
			if val != "" {
				fields = append(fields, hiddenField{Name: name, Value: val})
			}
		}
	}
	return fields
}
