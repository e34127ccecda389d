//go:build !linux

package main

import "io"

func writeBuffers(w io.Writer, bufs [][]byte) error {
	return writePlain(w, bufs)
}
