//go:build tools

// Package tools records build-time dependencies that would otherwise be
// pruned from go.mod as unused, following the standard tools.go pattern.
package tools

import (
	_ "github.com/client9/misspell/cmd/misspell"
)
