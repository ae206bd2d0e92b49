// Package localization resolves user-facing message keys into display text.
//
// Messages live in a golang.org/x/text/message catalog keyed by stable
// identifiers so descriptions and notifications can be compared in tests
// without depending on literal English text.
package localization
