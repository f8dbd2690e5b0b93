//go:build !debug

// control/fatal_release.go
// Author: momentics <momentics@gmail.com>

package control

import "github.com/sirupsen/logrus"

func terminate(log *logrus.Entry, msg string) {
	log.Fatal(msg)
}
