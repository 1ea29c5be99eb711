// Package flags provides read-only feature flags loaded from configuration.
// The flags switch the command interpreter between its default behavior and
// compatibility with older command files.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/photoalbum/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagSilentMissingShape makes move and color on an unknown shape name a
	// silent no-op instead of a reported not-found error. Resize always
	// reports, because it needs the shape's kind.
	FlagSilentMissingShape = "silent-missing-shape"

	// FlagLegacySnapshotDescription keeps only the first and last words of a
	// snapshot description, as older command files were interpreted.
	FlagLegacySnapshotDescription = "legacy-snapshot-description"

	// FlagLenientArity ignores tokens past the last argument a command takes,
	// as older command files were interpreted. Missing arguments are still
	// rejected.
	FlagLenientArity = "lenient-arity"
)

// known lists every flag this build understands with its description.
var known = map[string]string{
	FlagSilentMissingShape:        "ignore move/color commands that name an unknown shape",
	FlagLegacySnapshotDescription: "keep only the first and last word of snapshot descriptions",
	FlagLenientArity:              "ignore extra tokens after a command's last argument",
}

// Known returns the recognised flag names, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(known))
}

// Describe returns the description of a known flag.
func Describe(name string) (string, bool) {
	d, ok := known[name]
	return d, ok
}

// Registry holds feature flag state. It is read-only after New.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. Unknown names are kept but
// logged, so a typo in the config file is visible in the debug log.
// A nil map yields a registry with every flag disabled.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if _, ok := known[name]; !ok {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
