// Package config handles configuration management for compinst.
//
// Host configuration is loaded in layers with koanf: embedded defaults, the
// project manifest's config table, an optional standalone file, COMPINST_*
// environment variables and finally explicit overrides. The layered view is
// then resolved once into a Resolved value, which every other component
// reads from.
package config
