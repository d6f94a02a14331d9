// Package stablehlo builds a StableHLO program (text format) to then be JIT-compiled and
// executed by PJRT (github.com/gomlx/gopjrt/pjrt).
//
// It is the backend the lazy IR nodes are lowered into: each node's Lowerer emits one or more
// Statement into a Function, and the resulting Value objects are the backend-native handles of
// the node's outputs.
//
// Among its features:
//
// - Renders human-readable StableHLO text, in MLIR's generic operation format.
// - Shape inference: it calculates the output shapes for operations (see package shapeinference).
// - Written purely in Go, no C/C++ external dependencies.
//
// See StableHLO documentation and specifications in https://openxla.org/stablehlo/spec
package stablehlo

import "github.com/gomlx/lazyhlo/internal/utils"

// Generates the trivial element-wise functions (binary and unary operators) automatically.
//go:generate go run ../internal/cmd/ops_generator

// NormalizeIdentifier converts the name of an identifier (function name or function input parameter
// name, etc.) to a valid one: only letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
