// Package ui renders human-readable console output: sfdx command lifecycle
// messages for console logging and the bootstrap plan table.
package ui
