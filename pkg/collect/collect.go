// Package collect gathers candidate values from a reconciliation payload.
//
// Payloads arrive in one of several historical shapes. Each shape has an
// Extractor; extractors run in priority order, each claiming the top-level
// keys it understands, and their results are unioned into Candidates.
// Later extractors only ever add values.
package collect

import (
	"log/slog"
	"math"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// List is the ordered, deduplicated candidate list of one field.
// Values are normalized on insert; a value whose comparison key was already
// seen is dropped, so the first occurrence wins.
type List struct {
	seen   map[string]bool
	values []string
	field  profile.Field
}

// NewList returns an empty list for f.
func NewList(f profile.Field) *List {
	return &List{field: f, seen: make(map[string]bool)}
}

// Add normalizes raw and appends it unless it is unusable or a duplicate.
// It reports whether the list grew.
func (l *List) Add(raw string) bool {
	v, key, ok := normalize(l.field, raw)
	if !ok || l.seen[key] {
		return false
	}
	l.seen[key] = true
	l.values = append(l.values, v)
	return true
}

// Values returns a copy of the list in discovery order.
func (l *List) Values() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Len returns the number of distinct values.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.values)
}

// Partial is what one extractor found.
type Partial struct {
	profile.Contribution
	Aux     []profile.SocialAccount
	Records []profile.SourceRecord
}

// Empty reports whether p found nothing.
func (p *Partial) Empty() bool {
	return p.Contribution.Empty() && len(p.Aux) == 0 && len(p.Records) == 0
}

// Extractor understands one payload generation.
type Extractor interface {
	// Name identifies the generation in logs and as a source tag.
	Name() string

	// Claims reports whether a top-level key belongs to this generation.
	Claims(key string, v jsonval.Value) bool

	// Extract reads the claimed part of the payload. ok is false when it
	// found nothing.
	Extract(claimed *jsonval.Object) (p Partial, ok bool)
}

// Candidates is the union of everything the extractors found.
type Candidates struct {
	lists map[profile.Field]*List

	Social      []profile.SocialAccount // in discovery order, duplicates kept
	Aux         []profile.SocialAccount // enrichment-only accounts
	Breaches    []profile.BreachRecord  // in generation order, duplicates kept
	Addresses   []profile.Address
	Coordinates []profile.Coordinate
	Records     []profile.SourceRecord
	Generations []string // extractors that yielded data
}

func newCandidates() *Candidates {
	return &Candidates{lists: make(map[profile.Field]*List)}
}

// Add inserts values for f.
func (c *Candidates) Add(f profile.Field, vals ...string) {
	l := c.lists[f]
	if l == nil {
		l = NewList(f)
		c.lists[f] = l
	}
	for _, v := range vals {
		l.Add(v)
	}
}

// Values returns the distinct values collected for f in discovery order.
func (c *Candidates) Values(f profile.Field) []string {
	return c.lists[f].Values()
}

// First returns the first value collected for f, or "".
func (c *Candidates) First(f profile.Field) string {
	if l := c.lists[f]; l.Len() > 0 {
		return l.values[0]
	}
	return ""
}

// Len returns the number of distinct values collected for f.
func (c *Candidates) Len(f profile.Field) int {
	return c.lists[f].Len()
}

func (c *Candidates) absorb(name string, p Partial) {
	for f, vals := range p.Values {
		c.Add(f, vals...)
	}
	c.Social = append(c.Social, p.Social...)
	c.Aux = append(c.Aux, p.Aux...)
	c.Breaches = append(c.Breaches, p.Breaches...)
	c.Addresses = append(c.Addresses, p.Addresses...)
	for _, pt := range p.Coordinates {
		c.addCoordinate(pt)
	}
	c.Records = append(c.Records, p.Records...)
	c.Generations = append(c.Generations, name)
}

// addCoordinate drops points equal to an existing one at six decimal places.
func (c *Candidates) addCoordinate(pt profile.Coordinate) {
	round := func(f float64) float64 { return math.Round(f*1e6) / 1e6 }
	for _, have := range c.Coordinates {
		if round(have.Latitude) == round(pt.Latitude) && round(have.Longitude) == round(pt.Longitude) {
			return
		}
	}
	c.Coordinates = append(c.Coordinates, pt)
}

// Collector runs extractors in priority order.
type Collector struct {
	Logger     *slog.Logger
	Extractors []Extractor
}

// New returns a collector with the default extractors.
func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{Logger: logger, Extractors: DefaultExtractors()}
}

// DefaultExtractors returns the known payload generations, newest first:
// consolidated, processed, legacy and finally a generic scan of whatever
// is left.
func DefaultExtractors() []Extractor {
	return []Extractor{consolidated{}, processed{}, legacy{}, scan{}}
}

// Splitter is implemented by extractors that claim only part of a
// top-level value. Split returns the part to extract and what is left
// for later extractors, or nil when nothing is left.
type Splitter interface {
	Split(key string, v jsonval.Value) (claimed, rest jsonval.Value)
}

// Collect runs every extractor over root. Each extractor sees only the
// top-level keys, or parts of them, no earlier extractor claimed.
func (c *Collector) Collect(root *jsonval.Object) *Candidates {
	out := newCandidates()
	rest := root
	for _, e := range c.Extractors {
		claimed, remaining := jsonval.NewObject(), jsonval.NewObject()
		for k, v := range rest.All() {
			if e.Claims(k, v) {
				if sp, ok := e.(Splitter); ok {
					var left jsonval.Value
					if v, left = sp.Split(k, v); left != nil {
						remaining.Set(k, left)
					}
				}
				claimed.Set(k, v)
			} else {
				remaining.Set(k, v)
			}
		}
		rest = remaining
		if claimed.Len() == 0 {
			continue
		}
		p, ok := e.Extract(claimed)
		if !ok {
			c.Logger.Debug("payload generation yielded nothing", "generation", e.Name(), "keys", claimed.Keys())
			continue
		}
		c.Logger.Debug("payload generation yielded data", "generation", e.Name(),
			"fields", len(p.Values), "accounts", len(p.Social), "breaches", len(p.Breaches), "records", len(p.Records))
		out.absorb(e.Name(), p)
	}
	return out
}

// Collect runs the default extractors with the default logger.
func Collect(root *jsonval.Object) *Candidates {
	return New(nil).Collect(root)
}
