package scan

import (
	"bufio"
	"fmt"
	"io"
)

// WriteReport writes the plain-text report: head, tail and length of the demo
// sequence followed by the longest-sequence winner.
func WriteReport(w io.Writer, r Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "First four values in sequence for %d:\n", r.Demo.Start)
	for _, v := range r.Demo.Head {
		fmt.Fprintf(bw, "%d\n", v)
	}
	fmt.Fprintf(bw, "Last four values in sequence for %d:\n", r.Demo.Start)
	for _, v := range r.Demo.Tail {
		fmt.Fprintf(bw, "%d\n", v)
	}
	fmt.Fprintf(bw, "Length of sequence for %d:\n%d\n", r.Demo.Start, r.Demo.Length)
	fmt.Fprintf(bw, "Number with longest sequence:\n%d\n", r.Best.Start)
	fmt.Fprintf(bw, "Length of longest sequence:\n%d\n", r.Best.Length)

	return bw.Flush()
}
