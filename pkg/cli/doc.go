// Package cli implements the authctl command tree.
package cli
