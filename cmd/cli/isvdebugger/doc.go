// Package isvdebugger wires the bootstrap and plan commands that create ISV
// debugger projects from a forceide:// URI.
package isvdebugger
