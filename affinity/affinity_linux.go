//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation of worker.Pool thread pinning via pthread_setaffinity_np.

package affinity

/*
#define _GNU_SOURCE
#include <sched.h>
#include <pthread.h>
#include <errno.h>

// Pin the calling worker pool thread to the given logical CPU core.
int go_pin_worker_thread(int cpu) {
	cpu_set_t set;
	CPU_ZERO(&set);
	CPU_SET(cpu, &set);
	return pthread_setaffinity_np(pthread_self(), sizeof(set), &set);
}
*/
import "C"
import "fmt"

// pinWorkerThread pins the calling worker.Pool goroutine's OS thread to
// cpuID on Linux.
func pinWorkerThread(cpuID int) error {
	ret := C.go_pin_worker_thread(C.int(cpuID))
	if ret != 0 {
		return fmt.Errorf("affinity: pthread_setaffinity_np failed, code %d", ret)
	}
	return nil
}
