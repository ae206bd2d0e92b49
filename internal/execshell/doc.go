// Package execshell provides structured helpers for invoking the Salesforce CLI.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// observers, OSCommandRunner is the os/exec backed default, and
// CommandMessageFormatter renders human-readable messages for the sfdx
// force topics used by the ISV debugger bootstrap.
package execshell
