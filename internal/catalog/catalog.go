// Package catalog holds the read-only paper collection and its loaders.
// The collection is populated once at startup and never mutated.
package catalog

// Collection is the full paper set in dataset order. Dataset order doubles
// as the total order used for prev/next navigation.
type Collection struct {
	papers []Paper
	byID   map[string]int
}

// NewCollection normalizes the papers and indexes them by id. Duplicate ids
// keep the first occurrence, matching lookup-by-first semantics.
func NewCollection(papers []Paper) *Collection {
	c := &Collection{
		papers: papers,
		byID:   make(map[string]int, len(papers)),
	}
	for i := range c.papers {
		c.papers[i].normalize()
		if _, dup := c.byID[c.papers[i].ID]; !dup {
			c.byID[c.papers[i].ID] = i
		}
	}
	return c
}

// Papers returns the full collection in dataset order. Callers must not
// mutate the returned slice.
func (c *Collection) Papers() []Paper {
	return c.papers
}

// Len returns the number of papers.
func (c *Collection) Len() int {
	return len(c.papers)
}

// ByID returns the paper with the given id.
func (c *Collection) ByID(id string) (*Paper, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.papers[i], true
}

// Adjacent returns the ids of the papers before and after id in collection
// order. Either may be empty at the boundaries or when id is unknown.
func (c *Collection) Adjacent(id string) (prev, next string) {
	i, ok := c.byID[id]
	if !ok {
		return "", ""
	}
	if i > 0 {
		prev = c.papers[i-1].ID
	}
	if i < len(c.papers)-1 {
		next = c.papers[i+1].ID
	}
	return prev, next
}

// SessionGroup is the papers of one session, in collection order.
type SessionGroup struct {
	Session string
	Papers  []*Paper
}

// SessionGroups groups the collection by session in encounter order, for the
// detail-page sidebar.
func (c *Collection) SessionGroups() []SessionGroup {
	var groups []SessionGroup
	index := make(map[string]int)
	for i := range c.papers {
		s := c.papers[i].Session.String()
		if s == "" {
			s = "Other"
		}
		gi, ok := index[s]
		if !ok {
			gi = len(groups)
			index[s] = gi
			groups = append(groups, SessionGroup{Session: s})
		}
		groups[gi].Papers = append(groups[gi].Papers, &c.papers[i])
	}
	return groups
}
