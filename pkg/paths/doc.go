// Package paths provides centralized path handling for compinst.
// It locates the project root, the installer's own data directory (the
// "install root", which holds the default temporary extraction directory)
// and the log file, honoring XDG base directories and environment overrides.
package paths
