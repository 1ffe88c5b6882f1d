package types

import "time"

// ConfigOptions are the structured inputs to the daemon config
// renderer. ExtraLines is a deliberate raw escape hatch: lines are
// appended to the rendered file verbatim, in order, with no
// validation, so operators can set daemon options splashgen does not
// model.
type ConfigOptions struct {
	ShowDelay     time.Duration
	DeviceTimeout time.Duration
	Theme         string
	ExtraLines    []string
}

// Artifact is a single file produced by an assembly pass. Exactly one
// of SourcePath or Content is set: SourcePath means the assembler
// copies an existing file, Content means the bytes are generated.
// Artifacts are owned by the assembler until written; once written
// they are part of the destination tree and never mutated.
type Artifact struct {
	DestinationPath string
	SourcePath      string
	Content         []byte
}

// LifecycleBinding declares which init-system target stages a unit
// shipped with the daemon belongs to. Bindings are purely declarative;
// the init system is the sole consumer that interprets them.
type LifecycleBinding struct {
	UnitName string   `yaml:"unit"`
	Targets  []string `yaml:"targets"`
}

// LinkBinding is a symlink-equivalent binding from a static
// destination-tree path to a writable runtime path. The early-boot
// fallback path materializes these before any unit depending on the
// daemon starts.
type LinkBinding struct {
	Source string `yaml:"source"`
	Link   string `yaml:"link"`
}
