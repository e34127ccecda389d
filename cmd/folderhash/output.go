package main

import (
	"fmt"
	"io"
)

// output collects the body of a command and writes it in one go
type output struct {
	w    io.Writer
	bufs [][]byte
}

func newOutput(w io.Writer) *output {
	return &output{w: w}
}

// Write queues p; the bytes are copied
func (o *output) Write(p []byte) {
	if len(p) > 0 {
		o.bufs = append(o.bufs, append([]byte(nil), p...))
	}
}

// WriteString queues s as is
func (o *output) WriteString(s string) {
	if s != "" {
		o.bufs = append(o.bufs, []byte(s))
	}
}

// Line queues s followed by a newline
func (o *output) Line(s string) {
	o.bufs = append(o.bufs, []byte(s+"\n"))
}

func (o *output) Linef(format string, args ...interface{}) {
	o.Line(fmt.Sprintf(format, args...))
}

// Flush writes everything queued so far
func (o *output) Flush() error {
	bufs := o.bufs
	o.bufs = nil
	if len(bufs) == 0 {
		return nil
	}
	return writeBuffers(o.w, bufs)
}

func writePlain(w io.Writer, bufs [][]byte) error {
	for _, b := range bufs {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
