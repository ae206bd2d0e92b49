// Package prompt adapts operator terminals, piped input, and colored console
// output to the forceide prompter and notifier contracts.
package prompt
