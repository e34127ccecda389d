package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputFlushToBuffer(t *testing.T) {
	var buf bytes.Buffer
	out := newOutput(&buf)
	out.Line("first")
	out.Linef("%s %d", "second", 2)
	out.WriteString("")
	out.Write([]byte("third\n"))

	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got, want := buf.String(), "first\nsecond 2\nthird\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// A second flush writes nothing
	if err := out.Flush(); err != nil {
		t.Fatalf("second Flush failed: %v", err)
	}
	if buf.Len() != len("first\nsecond 2\nthird\n") {
		t.Errorf("second flush wrote data: %q", buf.String())
	}
}

func TestOutputFlushToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	out := newOutput(file)
	var want strings.Builder
	// More lines than fit into a single writev call
	for i := 0; i < 2500; i++ {
		out.Linef("line %d", i)
		want.WriteString("line ")
		want.WriteString(itoa(i))
		want.WriteString("\n")
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != want.String() {
		t.Errorf("file content mismatch: got %d bytes, want %d", len(data), want.Len())
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for ; i > 0; i /= 10 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
	}
	return string(digits)
}
