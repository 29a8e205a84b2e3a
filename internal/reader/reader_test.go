package reader

import (
	"testing"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

func identity(p string) string { return p }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"paired", ModePaired},
		{"fulltext", ModeFulltext},
		{"gallery", ModeGallery},
		{"", ModePaired},
		{"bogus", ModePaired},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildSlidesGroupsSectionsByFigure(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Type: "heading", Text: "Intro"},
		{Type: "body", Text: "First mention of fig 2.", Figure: 2},
		{Type: "body", Text: "Unanchored paragraph."},
		{Type: "body", Text: "Discussion of fig 1.", Figure: 1},
		{Type: "body", Text: "Second mention of fig 2.", Figure: 2},
	}}
	figures := []catalog.Figure{
		{Num: 1, Path: "images/1.1/fig_1.png", Caption: "Overview"},
		{Num: 2, Path: "images/1.1/fig_2.png", Caption: "Architecture"},
	}

	slides := BuildSlides(doc, figures, identity)
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	// Deck is ordered by figure number even though fig 2 was encountered first.
	if slides[0].FigNum != 1 || slides[1].FigNum != 2 {
		t.Errorf("slide order: %d, %d", slides[0].FigNum, slides[1].FigNum)
	}
	if slides[1].Text != "First mention of fig 2.\n\nSecond mention of fig 2." {
		t.Errorf("grouped text: %q", slides[1].Text)
	}
	if slides[0].Image != "images/1.1/fig_1.png" {
		t.Errorf("slide image: %q", slides[0].Image)
	}
	if slides[0].Label != "Fig. 1" {
		t.Errorf("slide label: %q", slides[0].Label)
	}
}

func TestBuildSlidesAppendsUncoveredFigures(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Type: "body", Text: "About fig 3.", Figure: 3},
	}}
	figures := []catalog.Figure{
		{Num: 1, Path: "images/x/fig_1.png", Caption: "Die photo"},
		{Num: 3, Path: "images/x/fig_3.png", Caption: "Results"},
		{Num: 4, Path: "", Caption: "No image"},
	}

	slides := BuildSlides(doc, figures, identity)
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].FigNum != 1 || slides[0].Text != "Die photo" {
		t.Errorf("uncovered figure should use its caption: %+v", slides[0])
	}
	if slides[1].FigNum != 3 || slides[1].Text != "About fig 3." {
		t.Errorf("covered figure keeps its sections: %+v", slides[1])
	}
}

func TestBuildSlidesNilDocDegradesToCaptions(t *testing.T) {
	figures := []catalog.Figure{
		{Num: 2, Path: "images/x/fig_2.png", Caption: "Second"},
		{Num: 1, Path: "images/x/fig_1.png", Caption: "First"},
	}
	slides := BuildSlides(nil, figures, identity)
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].FigNum != 1 || slides[0].Text != "First" {
		t.Errorf("caption fallback: %+v", slides[0])
	}
}

func TestBuildSlidesEmpty(t *testing.T) {
	if got := BuildSlides(nil, nil, identity); got != nil {
		t.Errorf("no content should yield no slides, got %v", got)
	}
}

func TestSlideParagraphs(t *testing.T) {
	s := Slide{Text: "First.\n\n\n\nSecond.\n\n  \n\nThird."}
	got := s.Paragraphs()
	want := []string{"First.", "Second.", "Third."}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFulltext(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Type: "heading", Text: "Skip me"},
		{Type: "body", Text: "Keep me.", Figure: 1},
		{Type: "body", Text: "Me too."},
	}}
	got := Fulltext(doc)
	if len(got) != 2 || got[0] != "Keep me." || got[1] != "Me too." {
		t.Errorf("Fulltext() = %v", got)
	}
	if Fulltext(nil) != nil {
		t.Error("nil doc should yield nil")
	}
}

func TestBuildGallerySkipsPathless(t *testing.T) {
	figures := []catalog.Figure{
		{Num: 1, Path: "images/x/fig_1.png", Caption: "A"},
		{Num: 2, Path: "", Caption: "B"},
	}
	items := BuildGallery(figures, func(p string) string { return "/assets/" + p })
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Image != "/assets/images/x/fig_1.png" {
		t.Errorf("resolved image: %q", items[0].Image)
	}
}
