//go:build linux

package folderhash

import (
	"golang.org/x/sys/unix"
)

type fdFile interface {
	Fd() uintptr
}

// adviseSequential tells the kernel the whole file will be read once, front to back.
// Files without a descriptor (in-memory filesystems) are left alone.
func adviseSequential(file interface{}) {
	f, ok := file.(fdFile)
	if !ok {
		return
	}
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL); err != nil && IsDebugEnabled(DebugTree) {
		VerboseLog(3, "fadvise failed: %v", err)
	}
}
