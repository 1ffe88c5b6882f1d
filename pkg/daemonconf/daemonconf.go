// Package daemonconf renders the splash daemon's runtime
// configuration file.
package daemonconf

import (
	"fmt"
	"strings"

	"github.com/bootsplash/splashgen/pkg/types"
)

// Render produces the daemon configuration bytes for the given
// options. It is a pure function: identical options always render
// identical bytes.
//
// The format is fixed: one [Daemon] section, the structured fields in
// declaration order, then every extra line verbatim. Extra lines are
// opaque passthrough so operators can set daemon options splashgen
// does not model; they are never validated, reordered or deduplicated.
func Render(opts types.ConfigOptions) []byte {
	var b strings.Builder
	b.WriteString("[Daemon]\n")
	fmt.Fprintf(&b, "ShowDelay=%d\n", int(opts.ShowDelay.Seconds()))
	fmt.Fprintf(&b, "DeviceTimeout=%d\n", int(opts.DeviceTimeout.Seconds()))
	fmt.Fprintf(&b, "Theme=%s\n", opts.Theme)
	for _, line := range opts.ExtraLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
