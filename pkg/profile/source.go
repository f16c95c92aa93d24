// Source registration and interface definitions.

package profile

import (
	"strings"
	"sync"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
)

// Source knows how to read the records of one upstream lookup source.
// Each source package registers itself via Register() in an init() function.
type Source interface {
	// Name returns the canonical source identifier (e.g., "callerid", "whatsapp").
	Name() string

	// DisplayName returns the human-readable source label.
	DisplayName() string

	// Match returns true if an upstream source name belongs to this source.
	Match(name string) bool

	// Platform returns the social platform this source's records describe, or "".
	Platform() string

	// Project converts unwrapped record data into its display-ready form.
	Project(data jsonval.Value) map[string]any

	// Contribute returns the candidates a record adds to the profile.
	Contribute(data jsonval.Value) Contribution
}

var (
	registryMu sync.RWMutex
	registry   []Source
	byName     = make(map[string]Source)
)

// Register adds a source to the global registry.
// This should be called from each source package's init() function.
func Register(s Source) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := strings.ToLower(s.Name())
	if _, exists := byName[name]; exists {
		panic("source already registered: " + name)
	}
	registry = append(registry, s)
	byName[name] = s
}

// Sources returns all registered sources in registration order.
func Sources() []Source {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Source, len(registry))
	copy(out, registry)
	return out
}

// LookupSource returns the source for an upstream source name, or nil.
// Exact names win; otherwise sources are asked in registration order.
func LookupSource(name string) Source {
	registryMu.RLock()
	defer registryMu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if s := byName[key]; s != nil {
		return s
	}
	for _, s := range registry {
		if s.Match(key) {
			return s
		}
	}
	return nil
}

// AuxiliarySource is a source whose accounts only enrich accounts found
// elsewhere. Its records never introduce new accounts.
type AuxiliarySource interface {
	Source

	// Accounts returns the accounts described by a record.
	Accounts(data jsonval.Value) []SocialAccount
}
