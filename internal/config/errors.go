package config

import "errors"

// Error kinds recognized by the Config Loader (spec.md §4.1, §7).
var (
	ErrNotFound = errors.New("config: explicit config file not found")
	ErrParse    = errors.New("config: malformed configuration")
	ErrInvalid  = errors.New("config: missing required section")
)
