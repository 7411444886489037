package domain

import "strings"

// A named address entered by the user, either an origin or a destination.
type NamedLocation struct {
	Name    string
	Address string
}

// NewLocations builds an ordered location list keyed by name.
//
// Entries with a blank name or address are dropped. When a name repeats,
// the entry keeps the position of its first occurrence and takes the
// address of its last one.
func NewLocations(entries []NamedLocation) []NamedLocation {
	out := make([]NamedLocation, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		addr := strings.TrimSpace(e.Address)
		if name == "" || addr == "" {
			continue
		}

		if i, ok := index[name]; ok {
			out[i].Address = addr
			continue
		}

		index[name] = len(out)
		out = append(out, NamedLocation{Name: name, Address: addr})
	}

	return out
}
