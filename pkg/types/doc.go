// Package types defines the core value types shared across splashgen:
// themes, theme sets, target environments, daemon config options,
// assembly artifacts and lifecycle bindings, plus the filesystem
// interface all tree-writing components operate through.
package types
