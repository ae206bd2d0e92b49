// Package cli constructs the isvdebug command-line interface, wiring the Cobra
// command hierarchy, the Viper configuration loader, and zap logging.
package cli
