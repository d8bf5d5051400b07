package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes progress steps to stderr for interactive runs. Batch
// invocations (cron, MCP) simply don't attach one.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to stderr.
func NewPrinter() *Printer {
	return &Printer{w: os.Stderr}
}

// Step prints one progress line.
func (p *Printer) Step(msg string) {
	fmt.Fprintf(p.w, "• %s\n", msg)
}
