// Package reconcile assembles one canonical profile from an aggregator
// payload.
//
// The payload may mix every generation of the aggregator's output format.
// Reconcile never fails on missing, duplicated or implausible data; the
// only error it returns is profile.ErrMalformedInput, for payloads that are
// not a JSON object or array.
package reconcile

import (
	"log/slog"

	"github.com/codeGROOVE-dev/dossier/pkg/collect"
	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/score"

	// Register source projectors.
	_ "github.com/codeGROOVE-dev/dossier/pkg/breach"
	_ "github.com/codeGROOVE-dev/dossier/pkg/callerid"
	_ "github.com/codeGROOVE-dev/dossier/pkg/fraud"
	_ "github.com/codeGROOVE-dev/dossier/pkg/linkedin"
	_ "github.com/codeGROOVE-dev/dossier/pkg/sociallookup"
	_ "github.com/codeGROOVE-dev/dossier/pkg/whatsapp"
)

// Option configures a Reconcile call.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	weights    score.Weights
	maxEntries int
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithWeights replaces the default scoring table.
func WithWeights(w score.Weights) Option {
	return func(c *config) { c.weights = w }
}

// WithMaxEntries caps every list in the profile at n. Values below one
// restore profile.DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(c *config) { c.maxEntries = n }
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:     slog.Default(),
		weights:    score.DefaultWeights(),
		maxEntries: profile.DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.maxEntries < 1 {
		cfg.maxEntries = profile.DefaultMaxEntries
	}
	return cfg
}

// Reconcile parses a raw aggregator payload and assembles its profile.
func Reconcile(data []byte, opts ...Option) (*profile.Profile, error) {
	v, err := jsonval.Parse(data)
	if err != nil {
		return nil, &profile.MalformedInputError{Reason: err.Error()}
	}
	return FromValue(v, opts...)
}

// FromValue assembles the profile of an already decoded payload.
// A top-level array is read as a list of per-source step records.
func FromValue(v jsonval.Value, opts ...Option) (*profile.Profile, error) {
	cfg := newConfig(opts)
	root, err := rootObject(jsonval.Unwrap(v))
	if err != nil {
		return nil, err
	}
	c := collect.New(cfg.logger).Collect(root)
	p := assemble(c, cfg)
	cfg.logger.Debug("reconciled profile",
		"generations", c.Generations,
		"names", len(p.BasicInfo.Names),
		"phones", len(p.ContactInfo.Phones),
		"emails", len(p.ContactInfo.Emails),
		"accounts", len(p.SocialMedia.Accounts),
		"platforms", len(p.SocialMedia.Platforms),
		"breaches", len(p.SecurityInfo.BreachList))
	return p, nil
}

func rootObject(v jsonval.Value) (*jsonval.Object, error) {
	switch t := v.(type) {
	case *jsonval.Object:
		if t == nil {
			return nil, &profile.MalformedInputError{Reason: "payload is null"}
		}
		return t, nil
	case jsonval.Array:
		root := jsonval.NewObject()
		root.Set("steps", t)
		return root, nil
	case nil, jsonval.Null:
		return nil, &profile.MalformedInputError{Reason: "payload is null"}
	case jsonval.Bool:
		return nil, &profile.MalformedInputError{Reason: "payload is a boolean"}
	case jsonval.Number:
		return nil, &profile.MalformedInputError{Reason: "payload is a number"}
	case jsonval.String:
		return nil, &profile.MalformedInputError{Reason: "payload is a string"}
	default:
		return nil, &profile.MalformedInputError{Reason: "unsupported payload"}
	}
}
