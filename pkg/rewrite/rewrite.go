// Package rewrite rewrites absolute build-store theme references
// embedded in assembled theme files into paths under the destination
// tree, so the daemon never dereferences the build store at runtime.
//
// Descriptor files are rewritten structurally: parsed into key=value
// records, values rewritten, serialized back. Other text assets
// (renderer scripts and similar opaque third-party formats) fall back
// to plain text substitution. That fallback is a deliberate, scoped
// exception for formats splashgen does not model, not a general
// mechanism.
package rewrite

import (
	"bytes"
	"io/fs"
	"regexp"
	"strings"

	"github.com/bootsplash/splashgen/pkg/descriptor"
	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/filesystem"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/repository"
	"github.com/bootsplash/splashgen/pkg/types"
)

// Rewriter rewrites build-store theme references to destination-tree
// paths. Rewriting is total and idempotent: the pattern requires the
// store-root prefix, and rewritten paths start with the destination
// root instead, so output can never match again.
type Rewriter struct {
	pattern  *regexp.Regexp
	destRoot string
}

// New creates a Rewriter mapping references under storeRoot to theme
// paths under destRoot
func New(storeRoot, destRoot string) *Rewriter {
	return &Rewriter{
		pattern:  paths.StoreThemeRef(storeRoot),
		destRoot: destRoot,
	}
}

// Apply rewrites every store theme reference in s
func (r *Rewriter) Apply(s string) string {
	return r.pattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.pattern.FindStringSubmatch(m)
		return paths.ThemeDir(r.destRoot, sub[1])
	})
}

// Tree rewrites every text file under the themes directory of the
// destination tree for env. It must run after all copies for that
// tree have completed.
func Tree(ctx types.BuildContext, env types.TargetEnvironment) error {
	logger := logging.GetLogger("rewrite")
	root := ctx.RootFor(env)
	r := New(ctx.StoreRoot, root)

	themesDir := paths.ThemesDir(root)
	err := filesystem.WalkFiles(ctx.FS, themesDir, func(path string, entry fs.DirEntry) error {
		data, err := ctx.FS.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrRewrite, "cannot read %s", path)
		}
		if !isText(data) {
			return nil
		}

		var out []byte
		if strings.HasSuffix(path, repository.DescriptorExt) {
			f := descriptor.Parse(data)
			if !f.RewriteValues(r.Apply) {
				return nil
			}
			out = f.Bytes()
		} else {
			rewritten := r.Apply(string(data))
			if rewritten == string(data) {
				return nil
			}
			out = []byte(rewritten)
		}

		info, err := ctx.FS.Stat(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrRewrite, "cannot stat %s", path)
		}
		if err := ctx.FS.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrRewrite, "cannot write %s", path)
		}
		logger.Debug().Str("file", path).Msg("rewrote store references")
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrRewrite, "rewriting %s tree failed", env)
	}
	return nil
}

// isText reports whether data looks like a text file. Theme
// directories mix descriptors and scripts with image assets; only the
// former carry store references.
func isText(data []byte) bool {
	return !bytes.ContainsRune(data, 0x00)
}
