// Package config loads the tool's fixed locations from AUTHCTL_* environment
// variables, with an optional YAML file overlay.
package config
