package server

import (
	"context"

	"github.com/paperdeck/paperdeck/internal/catalog"
	"github.com/paperdeck/paperdeck/internal/lightbox"
	"github.com/paperdeck/paperdeck/internal/reader"
)

// buildReader assembles the private-mode reader for one detail view. The
// structured text document is loaded fresh on every visit; a failed load
// degrades to caption-only slides, never to an error page.
func (s *Server) buildReader(ctx context.Context, p *catalog.Paper, mode reader.Mode, slide, lb int) (*readerView, *lightboxView) {
	hasImages := false
	for _, fig := range p.Figures {
		if fig.Path != "" {
			hasImages = true
			break
		}
	}
	if !hasImages {
		return nil, nil
	}

	doc, err := s.source.Document(ctx, p.ID)
	if err != nil {
		doc = nil
	}

	slides := reader.BuildSlides(doc, p.Figures, s.resolver.Resolve)
	if slide < 0 || slide >= len(slides) {
		slide = 0
	}

	rv := &readerView{Mode: mode}
	for _, m := range []struct {
		mode  reader.Mode
		label string
	}{
		{reader.ModePaired, "Paired"},
		{reader.ModeFulltext, "Full Text"},
		{reader.ModeGallery, "Gallery"},
	} {
		rv.Modes = append(rv.Modes, modeView{
			Mode:   m.mode,
			Label:  m.label,
			Href:   detailHref(p.ID, m.mode, slide, -1),
			Active: m.mode == mode,
		})
	}

	switch mode {
	case reader.ModePaired:
		s.buildPaired(rv, p.ID, slides, slide)
	case reader.ModeFulltext:
		s.buildFulltext(ctx, rv, p.ID, doc)
	case reader.ModeGallery:
		for i, item := range reader.BuildGallery(p.Figures, s.resolver.Resolve) {
			rv.Gallery = append(rv.Gallery, galleryCard{
				Label:   item.Label,
				Caption: item.Caption,
				Image:   item.Image,
				Href:    detailHref(p.ID, reader.ModeGallery, slide, i),
			})
		}
	}

	return rv, s.buildLightbox(p, mode, slides, slide, lb)
}

func (s *Server) buildPaired(rv *readerView, id string, slides []reader.Slide, slide int) {
	if len(slides) == 0 {
		rv.Empty = true
		return
	}
	cur := slides[slide]
	rv.Slide = &slideView{
		Image:      cur.Image,
		Label:      cur.Label,
		Paragraphs: cur.Paragraphs(),
		Href:       detailHref(id, reader.ModePaired, slide, slide),
	}
	rv.PrevHref = detailHref(id, reader.ModePaired, (slide-1+len(slides))%len(slides), -1)
	rv.NextHref = detailHref(id, reader.ModePaired, (slide+1)%len(slides), -1)
	for i := range slides {
		rv.Dots = append(rv.Dots, dotView{
			Href:   detailHref(id, reader.ModePaired, i, -1),
			Active: i == slide,
		})
	}
}

// buildFulltext prefers the structured document's body sections; without
// them it falls back to the raw markdown document, and when that fails too
// the view reports the content unavailable.
func (s *Server) buildFulltext(ctx context.Context, rv *readerView, id string, doc *reader.Document) {
	if paras := reader.Fulltext(doc); len(paras) > 0 {
		rv.Fulltext = paras
		return
	}
	raw, err := s.source.Markdown(ctx, id)
	if err != nil {
		rv.FulltextErr = "Full text unavailable."
		return
	}
	rv.FulltextHTML = renderMarkdown(raw)
}

// buildLightbox seeds the overlay from whichever set the active mode
// exposes: the paired slide deck or the full figure gallery.
func (s *Server) buildLightbox(p *catalog.Paper, mode reader.Mode, slides []reader.Slide, slide, lb int) *lightboxView {
	if lb < 0 {
		return nil
	}

	var images, captions, labels []string
	switch mode {
	case reader.ModeGallery:
		for _, item := range reader.BuildGallery(p.Figures, s.resolver.Resolve) {
			images = append(images, item.Image)
			captions = append(captions, item.Label+": "+item.Caption)
			labels = append(labels, item.Label)
		}
	default:
		for _, sl := range slides {
			images = append(images, sl.Image)
			captions = append(captions, sl.Label)
			labels = append(labels, sl.Label)
		}
	}

	box := lightbox.Open(images, lb, captions, labels)
	if box == nil {
		return nil
	}
	return &lightboxView{
		Image:     box.Image(),
		Caption:   box.Caption(),
		Label:     box.Label(),
		PrevHref:  detailHref(p.ID, mode, slide, box.Prev()),
		NextHref:  detailHref(p.ID, mode, slide, box.Next()),
		CloseHref: detailHref(p.ID, mode, slide, -1),
	}
}
