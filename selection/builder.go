// Package selection turns operator index input into a SampleSet.
//
// Each of the preset.SlotCount slots takes one line of input. A line that is
// not a non-negative integer, or whose index is outside the discovered list,
// leaves the slot empty. Running out of input leaves the remaining slots
// empty. A selection never fails part way through.
package selection

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sampleset/preset"
)

// LineSource yields one line of operator input per call. io.EOF (or any
// error) ends the input.
type LineSource interface {
	ReadLine() (string, error)
}

type lineReader struct {
	sc *bufio.Scanner
}

// NewLineReader reads newline-terminated lines from r.
func NewLineReader(r io.Reader) LineSource {
	return &lineReader{sc: bufio.NewScanner(r)}
}

func (l *lineReader) ReadLine() (string, error) {
	if l.sc.Scan() {
		return l.sc.Text(), nil
	}
	if err := l.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// ResolveIndex maps one line of input to a sample name, or "" when the line
// is not a valid index into ids.
func ResolveIndex(ids []string, line string) string {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 0 || n >= len(ids) {
		return ""
	}
	return ids[n]
}

// Resolve maps up to preset.SlotCount input lines onto slots. Missing inputs
// leave their slots empty; extra inputs are ignored.
func Resolve(ids []string, inputs []string) [preset.SlotCount]string {
	var slots [preset.SlotCount]string
	for i := 0; i < preset.SlotCount && i < len(inputs); i++ {
		slots[i] = ResolveIndex(ids, inputs[i])
	}
	return slots
}

// PrintList writes the index→name table the operator picks from.
func PrintList(out io.Writer, ids []string) {
	for i, id := range ids {
		fmt.Fprintf(out, "%d: %s\n", i, id)
	}
}

// Build prints ids, then prompts for and reads one index per slot from in.
func Build(name string, ids []string, in LineSource, out io.Writer) preset.SampleSet {
	PrintList(out, ids)

	set := preset.SampleSet{Name: name}
	for slot := 0; slot < preset.SlotCount; slot++ {
		fmt.Fprintf(out, "slot %d: ", slot+1)
		line, err := in.ReadLine()
		if err != nil {
			fmt.Fprintln(out)
			break
		}
		set.Samples[slot] = ResolveIndex(ids, line)
	}
	return set
}
