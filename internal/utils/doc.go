// Package utils houses the configuration loader and logger factory shared by
// the isvdebug commands.
package utils
