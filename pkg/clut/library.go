package clut

import(
	"fmt"
	"sort"
)

// A Library holds all the in-memory tables, keyed by name. Entries go
// in and come out as copies, so the active table can be edited freely
// without touching the stored one until it is explicitly Put back.
type Library map[string]CLUT

func NewLibrary() Library {
	return Library{}
}

// NewPresetLibrary returns a library holding all the 1D and 3D presets
func NewPresetLibrary() Library {
	lib := NewLibrary()
	CreatePreset1DCLUTs(lib)
	CreatePreset3DCLUTs(lib)
	return lib
}

func (lib Library)Put(c CLUT) {
	lib[c.Name] = c.Clone()
}

func (lib Library)Get(name string) (CLUT, error) {
	c, ok := lib[name]
	if !ok {
		return CLUT{}, fmt.Errorf("no CLUT named '%s' in library", name)
	}
	return c.Clone(), nil
}

func (lib Library)Has(name string) bool {
	_, ok := lib[name]
	return ok
}

// Names lists the library keys, sorted
func (lib Library)Names() []string {
	names := make([]string, 0, len(lib))
	for name := range lib {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisplayNames is Names, tagged with each table's type, for listings
func (lib Library)DisplayNames() []string {
	names := lib.Names()
	for i, name := range names {
		names[i] = fmt.Sprintf("%-28s %s %4d", name, lib[name].Dims(), lib[name].Size)
	}
	return names
}
