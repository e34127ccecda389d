//go:build linux

package main

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// iovMax is the Linux IOV_MAX
const iovMax = 1024

// writeBuffers writes bufs with writev when w is a file, in chunks of at most
// iovMax buffers. A short write finishes with plain writes.
func writeBuffers(w io.Writer, bufs [][]byte) error {
	file, ok := w.(*os.File)
	if !ok {
		return writePlain(w, bufs)
	}

	for len(bufs) > 0 {
		chunk := bufs
		if len(chunk) > iovMax {
			chunk = chunk[:iovMax]
		}
		bufs = bufs[len(chunk):]

		iovecs := make([]syscall.Iovec, 0, len(chunk))
		total := 0
		for _, b := range chunk {
			iov := syscall.Iovec{Base: &b[0]}
			iov.SetLen(len(b))
			iovecs = append(iovecs, iov)
			total += len(b)
		}

		nw, err := vectorio.WritevRaw(file.Fd(), iovecs)
		if err != nil {
			return fmt.Errorf("writev: %w", err)
		}
		if nw < total {
			if err := writePlain(file, remainder(chunk, nw)); err != nil {
				return err
			}
		}
	}
	return nil
}

// remainder drops the first n bytes of bufs
func remainder(bufs [][]byte, n int) [][]byte {
	for len(bufs) > 0 && n >= len(bufs[0]) {
		n -= len(bufs[0])
		bufs = bufs[1:]
	}
	if len(bufs) > 0 && n > 0 {
		rest := make([][]byte, len(bufs))
		copy(rest, bufs)
		rest[0] = rest[0][n:]
		return rest
	}
	return bufs
}
