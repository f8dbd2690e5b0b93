// control/fatal.go
// Author: momentics <momentics@gmail.com>
//
// Fatal error path: invariant violations (allocator failure at init, screen
// permanently lost, barrier counter underflow) log through the module logger
// and terminate the process. Under the "debug" build tag this panics instead
// so a debugger can catch it; see fatal_debug.go / fatal_release.go.

package control

import "github.com/sirupsen/logrus"

// Fatal logs msg with args as structured fields, then terminates per the
// active build's terminate function: Fatal level and process exit by
// default, Error level and a panic under the "debug" tag.
func Fatal(log *logrus.Entry, msg string, args ...any) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	fields := logrus.Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	terminate(log.WithFields(fields), msg)
}
