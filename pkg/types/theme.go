package types

// Theme is a named bundle of splash assets discovered in the theme
// repository. A theme directory contains exactly one descriptor file
// (<name>.plymouth) which names the renderer module the theme uses.
// Themes are immutable once discovered.
type Theme struct {
	// Name is the theme's directory name, e.g. "bgrt"
	Name string

	// ModuleName is the renderer module declared by the descriptor,
	// e.g. "two-step"
	ModuleName string

	// AssetDir is the absolute path to the theme's asset directory
	AssetDir string

	// DescriptorFile is the absolute path to the .plymouth descriptor
	DescriptorFile string
}

// ThemeSet is an ordered, duplicate-free collection of themes. The
// resolver produces sets that are closure-complete: every theme
// referenced by a member's descriptor is either in the set or was
// reported as a missing dependency.
type ThemeSet struct {
	themes []Theme
	index  map[string]int
}

// NewThemeSet returns an empty ThemeSet
func NewThemeSet() *ThemeSet {
	return &ThemeSet{index: make(map[string]int)}
}

// Add appends a theme to the set if its name is not already present.
// It reports whether the theme was added.
func (s *ThemeSet) Add(t Theme) bool {
	if _, ok := s.index[t.Name]; ok {
		return false
	}
	s.index[t.Name] = len(s.themes)
	s.themes = append(s.themes, t)
	return true
}

// Contains reports whether a theme with the given name is in the set
func (s *ThemeSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the theme with the given name
func (s *ThemeSet) Get(name string) (Theme, bool) {
	i, ok := s.index[name]
	if !ok {
		return Theme{}, false
	}
	return s.themes[i], true
}

// Themes returns the themes in insertion order. The returned slice is
// a copy; mutating it does not affect the set.
func (s *ThemeSet) Themes() []Theme {
	out := make([]Theme, len(s.themes))
	copy(out, s.themes)
	return out
}

// Names returns the theme names in insertion order
func (s *ThemeSet) Names() []string {
	names := make([]string, len(s.themes))
	for i, t := range s.themes {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of themes in the set
func (s *ThemeSet) Len() int {
	return len(s.themes)
}
