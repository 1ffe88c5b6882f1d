// Package resolver computes the transitive closure of themes required
// to satisfy a selected theme: the selected theme plus every theme any
// member's descriptor references through a build-store themes path.
package resolver

import (
	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/repository"
	"github.com/bootsplash/splashgen/pkg/types"
)

// MissingDependency records a theme referenced by a descriptor but
// absent from the repository index. This is tolerated: the assembled
// tree keeps the dangling reference and the daemon ignores it at
// runtime. The operator gets a warning.
type MissingDependency struct {
	Theme        string
	ReferencedBy string
}

// Result is a resolved theme closure plus any gaps found on the way
type Result struct {
	Set     *types.ThemeSet
	Missing []MissingDependency
}

// Resolve computes the theme closure for the selected root theme.
//
// A missing root theme is fatal: there is nothing to render and the
// selection must be fixed. A missing transitively referenced theme is
// recorded and skipped. Cycles terminate because a theme is never
// visited twice.
func Resolve(ctx types.BuildContext, ix *repository.Index, rootTheme string) (*Result, error) {
	logger := logging.GetLogger("resolver")

	root, ok := ix.Lookup(rootTheme)
	if !ok {
		return nil, errors.Newf(errors.ErrThemeNotFound,
			"theme %q (selected by splash.theme) not found in the theme repository", rootTheme).
			WithDetail("theme", rootTheme).
			WithDetail("option", "splash.theme")
	}

	result := &Result{Set: types.NewThemeSet()}
	result.Set.Add(root)

	refPattern := paths.StoreThemeRef(ctx.StoreRoot)
	queue := []types.Theme{root}
	seen := map[string]bool{root.Name: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		data, err := ctx.FS.ReadFile(current.DescriptorFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRepositoryAccess,
				"cannot read descriptor for theme %s", current.Name)
		}

		for _, match := range refPattern.FindAllStringSubmatch(string(data), -1) {
			ref := match[1]
			if seen[ref] {
				continue
			}
			seen[ref] = true

			dep, ok := ix.Lookup(ref)
			if !ok {
				logger.Warn().
					Str("theme", ref).
					Str("referencedBy", current.Name).
					Msg("referenced theme not found, destination tree will carry a dangling reference")
				result.Missing = append(result.Missing, MissingDependency{
					Theme:        ref,
					ReferencedBy: current.Name,
				})
				continue
			}
			result.Set.Add(dep)
			queue = append(queue, dep)
		}
	}

	logger.Debug().
		Strs("themes", result.Set.Names()).
		Int("missing", len(result.Missing)).
		Msg("theme closure resolved")
	return result, nil
}
