// Package reader assembles the detail-page reading content: body text paired
// with figures, a full-text view, and a figure gallery. Content comes from a
// per-paper structured text document when one exists, falling back to figure
// captions and finally to a raw markdown document.
package reader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paperdeck/paperdeck/internal/catalog"
)

// Mode is one of the reader's presentation modes.
type Mode string

const (
	ModePaired   Mode = "paired"
	ModeFulltext Mode = "fulltext"
	ModeGallery  Mode = "gallery"
)

// ParseMode maps a query value to a Mode, defaulting to paired.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeFulltext:
		return ModeFulltext
	case ModeGallery:
		return ModeGallery
	default:
		return ModePaired
	}
}

// Section is one entry of the structured text document.
type Section struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Figure int    `json:"figure,omitempty"`
}

// Document is the per-paper structured text document.
type Document struct {
	Sections []Section `json:"sections"`
}

// Slide pairs one figure with the body text that discusses it.
type Slide struct {
	FigNum int
	Image  string
	Label  string
	Text   string
}

// BuildSlides assembles the paired-mode slide deck. Body sections are
// grouped by figure number in encounter order and newline-joined; figures no
// section refers to are appended with their caption as the only text. The
// final deck is ordered by ascending figure number. A nil doc (the document
// failed to load) degrades to caption-only slides.
func BuildSlides(doc *Document, figures []catalog.Figure, resolve func(string) string) []Slide {
	images := make(map[int]string, len(figures))
	for _, fig := range figures {
		if fig.Path != "" {
			images[fig.Num] = resolve(fig.Path)
		}
	}

	var slides []Slide
	covered := make(map[int]bool)

	if doc != nil {
		groups := make(map[int][]string)
		var order []int
		for _, sec := range doc.Sections {
			if sec.Type != "body" || sec.Figure == 0 {
				continue
			}
			if _, ok := groups[sec.Figure]; !ok {
				order = append(order, sec.Figure)
			}
			groups[sec.Figure] = append(groups[sec.Figure], sec.Text)
		}
		for _, fn := range order {
			slides = append(slides, Slide{
				FigNum: fn,
				Image:  images[fn],
				Label:  figLabel(fn),
				Text:   strings.Join(groups[fn], "\n\n"),
			})
			covered[fn] = true
		}
	}

	for _, fig := range figures {
		if fig.Path == "" || covered[fig.Num] {
			continue
		}
		covered[fig.Num] = true
		slides = append(slides, Slide{
			FigNum: fig.Num,
			Image:  images[fig.Num],
			Label:  figLabel(fig.Num),
			Text:   fig.Caption,
		})
	}

	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].FigNum < slides[j].FigNum
	})
	return slides
}

// Paragraphs splits slide text on blank lines, dropping empty chunks.
func (s Slide) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(s.Text, "\n\n") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Fulltext returns every body section's text as a paragraph list.
func Fulltext(doc *Document) []string {
	if doc == nil {
		return nil
	}
	var out []string
	for _, sec := range doc.Sections {
		if sec.Type == "body" {
			out = append(out, sec.Text)
		}
	}
	return out
}

// GalleryItem is one figure rendered in gallery mode.
type GalleryItem struct {
	FigNum  int
	Image   string
	Label   string
	Caption string
}

// BuildGallery lists every figure with a resolvable image path.
func BuildGallery(figures []catalog.Figure, resolve func(string) string) []GalleryItem {
	var items []GalleryItem
	for _, fig := range figures {
		if fig.Path == "" {
			continue
		}
		items = append(items, GalleryItem{
			FigNum:  fig.Num,
			Image:   resolve(fig.Path),
			Label:   figLabel(fig.Num),
			Caption: fig.Caption,
		})
	}
	return items
}

func figLabel(n int) string {
	return "Fig. " + strconv.Itoa(n)
}
