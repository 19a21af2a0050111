// Package ir provides the generic document representation that selection
// documents are decoded into before any selection is constructed.
//
// Decoding is deliberately split in two stages. The first stage (this
// package) turns JSON, YAML or CUE input into a sealed tree of Value nodes
// without any knowledge of selections. The second stage (package compiler)
// walks that tree and builds typed selections, failing closed on any shape
// it does not recognize.
//
// ir imports nothing internal. All other internal packages may import ir.
//
// Key constraints:
//   - Numbers are float64; NaN and ±Inf are valid in memory but cannot be
//     written canonically (JSON has no spelling for them)
//   - Object keys are iterated in RFC 8785 order via SortedKeys
//   - Canonical output is NFC normalized with HTML escaping disabled
package ir
