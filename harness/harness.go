// Package harness implements spec.md §4.2's line-oriented command
// dispatcher: it reads one command per input line, drives an
// rbtree.Tree, and writes one deterministic response line per command,
// running the structural validator after every mutation.
package harness

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lersek/rbcontainer/internal/metrics"
	"github.com/lersek/rbcontainer/rbtree"
)

// ErrOverlongLine is returned by Run when an input line fills the fixed
// read buffer without a terminating newline (spec.md §4.2.4, §6.2): a
// fatal condition that aborts the whole run.
var ErrOverlongLine = errors.New("harness: input line too long")

// maxLineLength is the harness's fixed line buffer, the same "fixed-size
// buffer fills" spec.md §4.2.4 describes: bufio.Scanner reports
// bufio.ErrTooLong the instant a token would overflow it, which *is* the
// overlong-line condition, not an emulation of it.
const maxLineLength = 4096

// CommandList is the fixed keyword table printed by -h and, per spec.md
// §4.2.4, echoed to the error stream at the start of an interactive
// session.
const CommandList = `commands (canonical / shorthand):
  insert V          / i V    insert a record with key V
  find V            / f V    look up key V
  delete V          / d V    remove key V
  forward-empty     / fe     empty the container, ascending (min -> next)
  backward-empty    / be     empty the container, descending (max -> prev)
  forward-list      / fl     list records in ascending order
  backward-list     / bl     list records in descending order
  count             / c      print the number of records currently held
  validate          / val    run the structural validator on demand
  quit              / q      stop reading input, as if at end of file
blank lines and lines starting with # are comments: ignored interactively,
echoed verbatim to output when reading from a file.
`

// Harness owns exactly one container instance and all the records it
// allocates, per spec.md §2's data-flow description.
type Harness struct {
	tree        *rbtree.Tree[int64, Record]
	out         *bufio.Writer
	errOut      io.Writer
	interactive bool
	metrics     *metrics.Counters
}

// New constructs a Harness writing responses to out and diagnostics to
// errOut. interactive controls comment-echoing and the startup banner
// (spec.md §4.2.1, §4.2.4).
func New(out io.Writer, errOut io.Writer, interactive bool, opts ...rbtree.Option) *Harness {
	return &Harness{
		tree:        rbtree.NewTree[int64, Record](comparator, opts...),
		out:         bufio.NewWriter(out),
		errOut:      errOut,
		interactive: interactive,
		metrics:     &metrics.Counters{},
	}
}

// Metrics returns the harness's operation counters.
func (h *Harness) Metrics() metrics.Snapshot { return h.metrics.Snapshot() }

// Run reads commands from in until EOF or a quit command, then empties the
// container via repeated deletion and tears it down (spec.md §4.2.1).
// On fatal failure it returns ErrOverlongLine or the underlying read
// error without emptying the container; everything else (unknown commands, bad integers) is reported
// as a diagnostic on errOut and does not stop the loop.
func (h *Harness) Run(in io.Reader) error {
	defer h.out.Flush()

	if h.interactive {
		fmt.Fprint(h.errOut, CommandList)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, maxLineLength), maxLineLength)

	for scanner.Scan() {
		line := scanner.Text()
		if h.isComment(line) {
			if !h.interactive {
				fmt.Fprintln(h.out, line)
			}
			continue
		}
		if !h.handleLine(line) {
			// quit
			break
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return ErrOverlongLine
		}
		return fmt.Errorf("harness: read input: %w", err)
	}

	h.drain()
	return nil
}

func (h *Harness) isComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// drain empties the container by repeatedly deleting its minimum node
// (not its root), releasing every
// user record, then tears it down — spec.md §4.2.1's end-of-input
// cleanup. It produces no output: it is not a command. Each deletion is
// followed by a validate, the same per-mutation cadence every other
// mutating command observes.
func (h *Harness) drain() {
	for {
		it, ok := h.tree.Min()
		if !ok {
			break
		}
		h.tree.Delete(it)
		h.validateOrPanic()
	}
	h.tree.Teardown()
}

// handleLine parses and dispatches one non-comment line, returning false
// only for the "quit" command (the loop's signal to stop early).
func (h *Harness) handleLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	spec, ok := commandTable[fields[0]]
	if !ok {
		fmt.Fprintf(h.errOut, "harness: unknown command %q\n", fields[0])
		return true
	}

	if spec.takesArg {
		if len(fields) != 2 {
			fmt.Fprintf(h.errOut, "harness: %s: expected exactly one integer argument\n", spec.canonical)
			return true
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Fprintf(h.errOut, "harness: %s: invalid integer %q: %v\n", spec.canonical, fields[1], err)
			return true
		}
		spec.run(h, v)
		return true
	}

	if len(fields) != 1 {
		fmt.Fprintf(h.errOut, "harness: %s: takes no argument\n", spec.canonical)
		return true
	}
	return spec.run(h, 0)
}

type commandSpec struct {
	canonical string
	takesArg  bool
	// run executes the command and returns false only to signal "stop
	// reading" (quit); every other command returns true.
	run func(h *Harness, arg int64) bool
}

var commandTable = buildCommandTable()

func buildCommandTable() map[string]commandSpec {
	specs := []commandSpec{
		{canonical: "insert", takesArg: true, run: func(h *Harness, v int64) bool { h.cmdInsert(v); return true }},
		{canonical: "find", takesArg: true, run: func(h *Harness, v int64) bool { h.cmdFind(v); return true }},
		{canonical: "delete", takesArg: true, run: func(h *Harness, v int64) bool { h.cmdDelete(v); return true }},
		{canonical: "forward-empty", run: func(h *Harness, _ int64) bool { h.cmdForwardEmpty(); return true }},
		{canonical: "backward-empty", run: func(h *Harness, _ int64) bool { h.cmdBackwardEmpty(); return true }},
		{canonical: "forward-list", run: func(h *Harness, _ int64) bool { h.cmdForwardList(); return true }},
		{canonical: "backward-list", run: func(h *Harness, _ int64) bool { h.cmdBackwardList(); return true }},
		{canonical: "count", run: func(h *Harness, _ int64) bool { h.cmdCount(); return true }},
		{canonical: "validate", run: func(h *Harness, _ int64) bool { h.cmdValidate(); return true }},
		{canonical: "quit", run: func(h *Harness, _ int64) bool { return false }},
	}
	shorthand := map[string]string{
		"insert": "i", "find": "f", "delete": "d",
		"forward-empty": "fe", "backward-empty": "be",
		"forward-list": "fl", "backward-list": "bl",
		"count": "c", "validate": "val", "quit": "q",
	}

	table := make(map[string]commandSpec, 2*len(specs))
	for _, s := range specs {
		table[s.canonical] = s
		if short, ok := shorthand[s.canonical]; ok {
			table[short] = s
		}
	}
	return table
}
