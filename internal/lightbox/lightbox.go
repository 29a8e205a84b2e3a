// Package lightbox models the shared overlay image viewer: an ordered image
// list with parallel captions and labels, and a current index that wraps at
// both ends.
package lightbox

import "strconv"

// Lightbox is one open overlay. Captions and Labels are parallel to Images
// and may be shorter or nil.
type Lightbox struct {
	Images   []string
	Captions []string
	Labels   []string
	Index    int
}

// Open replaces the viewer contents and positions it at start. An
// out-of-range start clamps into the list.
func Open(images []string, start int, captions, labels []string) *Lightbox {
	if len(images) == 0 {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if start >= len(images) {
		start = len(images) - 1
	}
	return &Lightbox{Images: images, Captions: captions, Labels: labels, Index: start}
}

// Next returns the index after the current one, wrapping to 0 past the end.
func (l *Lightbox) Next() int {
	return (l.Index + 1) % len(l.Images)
}

// Prev returns the index before the current one, wrapping to the last.
func (l *Lightbox) Prev() int {
	return (l.Index - 1 + len(l.Images)) % len(l.Images)
}

// Image is the currently shown image URL.
func (l *Lightbox) Image() string {
	return l.Images[l.Index]
}

// Caption is the current image's caption, empty when none was provided.
func (l *Lightbox) Caption() string {
	if l.Index < len(l.Captions) {
		return l.Captions[l.Index]
	}
	return ""
}

// Label is the current image's counter label, defaulting to "i+1/N".
func (l *Lightbox) Label() string {
	if l.Index < len(l.Labels) && l.Labels[l.Index] != "" {
		return l.Labels[l.Index]
	}
	return strconv.Itoa(l.Index+1) + "/" + strconv.Itoa(len(l.Images))
}
