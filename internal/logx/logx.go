// Package logx is a thin wrapper around the standard library's log
// package for this module's internal debug tracing.
package logx

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "bvhx: ", log.LstdFlags)

// Debugf logs a formatted debug line, only when BVHX_DEBUG is set.
func Debugf(format string, args ...interface{}) {
	if os.Getenv("BVHX_DEBUG") == "" {
		return
	}
	std.Printf(format, args...)
}

// Errorf always logs, regardless of BVHX_DEBUG.
func Errorf(format string, args ...interface{}) {
	std.Printf(format, args...)
}
