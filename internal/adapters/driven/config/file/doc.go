// Package file provides the TOML-backed configuration store. Settings
// live in ~/.rdsr/config.toml and are read as flat dot-notation keys.
package file
