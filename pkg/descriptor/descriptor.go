// Package descriptor parses plymouth theme descriptor files
// (<name>.plymouth). The format is a small INI dialect: section
// headers in brackets, Key=Value entries, comments and blank lines.
//
// Parsing is byte-preserving: serializing an unmodified File yields
// the input bytes unchanged. Only entry values are mutable, which is
// what the path rewriter needs.
package descriptor

import (
	"strings"

	"github.com/bootsplash/splashgen/pkg/errors"
)

// ThemeSection is the section every descriptor must carry
const ThemeSection = "Plymouth Theme"

// ModuleNameKey names the renderer module inside ThemeSection
const ModuleNameKey = "ModuleName"

// line is a single descriptor line. Entry lines keep the raw key part
// (including any surrounding spacing) separate from the value so a
// value rewrite does not disturb the rest of the line.
type line struct {
	raw     string
	section string
	keyPart string
	value   string
	isEntry bool
}

// File is a parsed descriptor
type File struct {
	lines       []line
	trailingEOL bool
}

// Parse parses descriptor bytes. It never fails on unknown content;
// lines that are neither headers nor entries are preserved verbatim.
func Parse(data []byte) *File {
	text := string(data)
	f := &File{trailingEOL: strings.HasSuffix(text, "\n")}
	if f.trailingEOL {
		text = strings.TrimSuffix(text, "\n")
	}
	if text == "" {
		return f
	}

	section := ""
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			section = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			f.lines = append(f.lines, line{raw: raw, section: section})
		case !strings.HasPrefix(trimmed, "#") && strings.Contains(raw, "="):
			i := strings.Index(raw, "=")
			f.lines = append(f.lines, line{
				section: section,
				keyPart: raw[:i],
				value:   raw[i+1:],
				isEntry: true,
			})
		default:
			f.lines = append(f.lines, line{raw: raw, section: section})
		}
	}
	return f
}

// Get returns the value of the first Key=Value entry with the given
// key inside the given section
func (f *File) Get(section, key string) (string, bool) {
	for _, l := range f.lines {
		if l.isEntry && l.section == section && strings.TrimSpace(l.keyPart) == key {
			return strings.TrimSpace(l.value), true
		}
	}
	return "", false
}

// Values returns every entry value in file order
func (f *File) Values() []string {
	var out []string
	for _, l := range f.lines {
		if l.isEntry {
			out = append(out, l.value)
		}
	}
	return out
}

// RewriteValues applies fn to every entry value in place and reports
// whether any value changed
func (f *File) RewriteValues(fn func(string) string) bool {
	changed := false
	for i := range f.lines {
		if !f.lines[i].isEntry {
			continue
		}
		if v := fn(f.lines[i].value); v != f.lines[i].value {
			f.lines[i].value = v
			changed = true
		}
	}
	return changed
}

// Bytes serializes the descriptor
func (f *File) Bytes() []byte {
	var b strings.Builder
	for i, l := range f.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.isEntry {
			b.WriteString(l.keyPart)
			b.WriteByte('=')
			b.WriteString(l.value)
		} else {
			b.WriteString(l.raw)
		}
	}
	if f.trailingEOL {
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// ModuleName extracts the renderer module a descriptor declares
func ModuleName(data []byte) (string, error) {
	name, ok := Parse(data).Get(ThemeSection, ModuleNameKey)
	if !ok || name == "" {
		return "", errors.Newf(errors.ErrDescriptorParse,
			"descriptor has no %s entry in [%s]", ModuleNameKey, ThemeSection)
	}
	return name, nil
}
