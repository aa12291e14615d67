package diff

import (
	"fmt"
	"strings"
)

// Algorithm computes an edit script turning a into b. Implementations must
// be deterministic and return entries in order: every line of a and b is
// covered exactly once by an Equal, Delete or Insert entry.
type Algorithm interface {
	// Name returns the config key for this algorithm (e.g., "myers").
	Name() string

	// Diff returns the edit script. It must not modify a or b.
	Diff(a, b []string) []Change
}

var (
	algorithms     = map[string]Algorithm{}
	algorithmOrder []string
)

// Register adds an algorithm to the registry. Registering a name twice
// replaces the earlier entry.
func Register(a Algorithm) {
	name := a.Name()
	if _, ok := algorithms[name]; !ok {
		algorithmOrder = append(algorithmOrder, name)
	}
	algorithms[name] = a
}

// Lookup returns the algorithm registered under name. Names are matched
// case-insensitively.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown diff algorithm %q (available: %s)", name, strings.Join(algorithmOrder, ", "))
	}
	return a, nil
}

// Algorithms returns the registered algorithm names in registration order.
func Algorithms() []string {
	names := make([]string, len(algorithmOrder))
	copy(names, algorithmOrder)
	return names
}
