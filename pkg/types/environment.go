package types

import "fmt"

// TargetEnvironment selects which destination tree an assembly pass
// produces: the fully booted operating system or the constrained
// early-boot environment that runs before the root filesystem is
// mounted.
type TargetEnvironment int

const (
	// EnvFull is the booted operating system tree. It carries every
	// renderer, including the windowing-system renderer, and the logo
	// alias links.
	EnvFull TargetEnvironment = iota

	// EnvMinimal is the early-boot tree. No display server exists at
	// that point, so the windowing-system renderer is stripped and no
	// alias links are created.
	EnvMinimal
)

// String implements fmt.Stringer
func (e TargetEnvironment) String() string {
	switch e {
	case EnvFull:
		return "full"
	case EnvMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("environment(%d)", int(e))
	}
}

// ParseEnvironment converts a user-supplied environment name
func ParseEnvironment(s string) (TargetEnvironment, error) {
	switch s {
	case "full":
		return EnvFull, nil
	case "minimal", "initrd":
		return EnvMinimal, nil
	default:
		return EnvFull, fmt.Errorf("unknown target environment %q (want full or minimal)", s)
	}
}
