//go:build debug

// control/fatal_debug.go
// Author: momentics <momentics@gmail.com>
//
// Under -tags debug, a Fatal error panics instead of exiting the process,
// matching the source's "breakpoints in debug" behavior.

package control

import "github.com/sirupsen/logrus"

func terminate(log *logrus.Entry, msg string) {
	log.Error(msg)
	panic(msg)
}
