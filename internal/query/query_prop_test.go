package query

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

func genPaper() *rapid.Generator[catalog.Paper] {
	return rapid.Custom(func(t *rapid.T) catalog.Paper {
		return catalog.Paper{
			ID:          rapid.StringMatching(`[0-9]{1,2}\.[0-9]{1,2}`).Draw(t, "id"),
			Title:       rapid.StringN(0, 24, 64).Draw(t, "title"),
			Session:     catalog.Scalar(rapid.SampledFrom([]string{"", "2", "10", "18", "30", "31"}).Draw(t, "session")),
			ProcessNode: catalog.Scalar(rapid.SampledFrom([]string{"", "7nm", "28nm", "65nm", "N/A"}).Draw(t, "process")),
			DieAreaMM2:  catalog.Scalar(rapid.SampledFrom([]string{"", "1.5", "4.5", "20"}).Draw(t, "area")),
			PowerMW:     catalog.Scalar(rapid.SampledFrom([]string{"", "12", "450", "900000"}).Draw(t, "power")),
			Application: rapid.SampledFrom([]string{"", "LLM inference", "edge vision"}).Draw(t, "application"),
			AnalyticalTags: rapid.SliceOfNDistinct(
				rapid.SampledFrom([]string{"sparsity", "in-memory", "dataflow", "analog"}),
				0, 3, rapid.ID).Draw(t, "tags"),
		}
	})
}

func genState() *rapid.Generator[State] {
	return rapid.Custom(func(t *rapid.T) State {
		return State{
			Session: rapid.SampledFrom([]string{SessionAll, "2", "10"}).Draw(t, "session"),
			Process: rapid.SampledFrom([]string{"", "28nm"}).Draw(t, "process"),
			AnalyticalTags: rapid.SliceOfNDistinct(
				rapid.SampledFrom([]string{"sparsity", "in-memory"}),
				0, 2, rapid.ID).Draw(t, "tags"),
			Search:   rapid.SampledFrom([]string{"", "a", "LLM"}).Draw(t, "q"),
			SortCol:  rapid.SampledFrom([]string{"", "id", "title", "power_mw", "die_area_mm2"}).Draw(t, "sort"),
			SortDesc: rapid.Bool().Draw(t, "dir"),
		}
	})
}

// Every visible paper passes every active predicate, and everything hidden
// fails at least one.
func TestApplyMatchesPredicates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		papers := rapid.SliceOfN(genPaper(), 0, 20).Draw(t, "papers")
		s := genState().Draw(t, "state")

		visible := Apply(papers, s)
		for i := range visible {
			if !s.Match(&visible[i]) {
				t.Fatalf("visible paper %s fails a predicate", visible[i].ID)
			}
		}

		matching := 0
		for i := range papers {
			if s.Match(&papers[i]) {
				matching++
			}
		}
		if matching != len(visible) {
			t.Fatalf("Apply dropped or invented rows: %d matching, %d visible", matching, len(visible))
		}
	})
}

// State encoding survives a URL round trip.
func TestStateEncodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genState().Draw(t, "state")
		parsed := ParseState(s.Values())

		if got, want := parsed.Values().Encode(), s.Values().Encode(); got != want {
			t.Fatalf("encode round trip: %q != %q", got, want)
		}
	})
}

// Adding an analytical tag never grows the visible set.
func TestTagSelectionMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		papers := rapid.SliceOfN(genPaper(), 0, 20).Draw(t, "papers")
		s := genState().Draw(t, "state")
		extra := rapid.SampledFrom([]string{"sparsity", "in-memory", "dataflow"}).Draw(t, "extra")

		before := len(Apply(papers, s))
		if s.HasTag(extra) {
			return
		}
		after := len(Apply(papers, s.ToggleTag(extra)))
		if after > before {
			t.Fatalf("adding tag %q grew the result from %d to %d", extra, before, after)
		}
	})
}
