package market

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Catalog is the in-memory instrument resolver. It is seeded from the
// instruments table at startup and optionally refreshed from the exchange;
// lookups never touch the database.
type Catalog struct {
	mu      sync.RWMutex
	bySym   map[string]Instrument
	ordered []Instrument
}

func NewCatalog(instruments []Instrument) *Catalog {
	c := &Catalog{}
	c.Replace(instruments)
	return c
}

// Replace swaps the full instrument set.
func (c *Catalog) Replace(instruments []Instrument) {
	bySym := make(map[string]Instrument, len(instruments))
	ordered := make([]Instrument, 0, len(instruments))
	for _, in := range instruments {
		sym := strings.ToUpper(strings.TrimSpace(in.Symbol))
		if sym == "" {
			continue
		}
		if _, dup := bySym[sym]; dup {
			continue
		}
		in.Symbol = sym
		bySym[sym] = in
		ordered = append(ordered, in)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Symbol < ordered[j].Symbol })

	c.mu.Lock()
	c.bySym = bySym
	c.ordered = ordered
	c.mu.Unlock()
}

// Resolve looks up a symbol, case-insensitively.
func (c *Catalog) Resolve(symbol string) (Instrument, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	in, ok := c.bySym[strings.ToUpper(strings.TrimSpace(symbol))]
	return in, ok
}

// All returns the instruments in symbol order.
func (c *Catalog) All() []Instrument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Instrument, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}

type scored struct {
	in    Instrument
	score int
}

// Search ranks instruments against a free-text query: exact symbol first,
// then prefix matches, then substring matches on symbol or display name,
// then near misses by edit distance. At most limit results are returned.
func (c *Catalog) Search(query string, limit int) []Instrument {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []scored
	for _, in := range c.ordered {
		name := strings.ToUpper(in.DisplayName)
		var score int
		switch {
		case in.Symbol == q:
			score = 0
		case strings.HasPrefix(in.Symbol, q) || strings.HasPrefix(name, q):
			score = 1
		case strings.Contains(in.Symbol, q) || strings.Contains(name, q):
			score = 2
		default:
			dist := levenshtein.ComputeDistance(q, in.Symbol)
			if dist > len(q)/2 {
				continue
			}
			score = 3 + dist
		}
		hits = append(hits, scored{in: in, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].in.Symbol < hits[j].in.Symbol
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Instrument, len(hits))
	for i, h := range hits {
		out[i] = h.in
	}
	return out
}
