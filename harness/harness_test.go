package harness

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script string, interactive bool) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	h := New(&out, &errOut, interactive)
	err := h.Run(strings.NewReader(script))
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// TestScenario1 matches spec.md §8 scenario 1.
func TestScenario1(t *testing.T) {
	out, _, err := run(t, "i 5\ni 3\ni 7\ni 3\nfl\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"insert: 5: inserted",
		"insert: 3: inserted",
		"insert: 7: inserted",
		"insert: 3: already exists",
		"forward-list: 3",
		"forward-list: 5",
		"forward-list: 7",
	}, lines(out))
}

// TestScenario2 matches spec.md §8 scenario 2.
func TestScenario2(t *testing.T) {
	out, _, err := run(t, "i 10\ni 20\ni 15\nd 20\nfl\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"insert: 10: inserted",
		"insert: 20: inserted",
		"insert: 15: inserted",
		"delete: 20: removed",
		"forward-list: 10",
		"forward-list: 15",
	}, lines(out))
}

// TestScenario3 matches spec.md §8 scenario 3.
func TestScenario3(t *testing.T) {
	out, _, err := run(t, "i 1\ni 2\ni 3\ni 4\ni 5\nfe\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"insert: 1: inserted",
		"insert: 2: inserted",
		"insert: 3: inserted",
		"insert: 4: inserted",
		"insert: 5: inserted",
		"forward-empty: 1: removed",
		"forward-empty: 2: removed",
		"forward-empty: 3: removed",
		"forward-empty: 4: removed",
		"forward-empty: 5: removed",
	}, lines(out))
}

// TestScenario4 matches spec.md §8 scenario 4.
func TestScenario4(t *testing.T) {
	out, _, err := run(t, "i 1\ni 2\ni 3\ni 4\ni 5\nbe\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"insert: 1: inserted",
		"insert: 2: inserted",
		"insert: 3: inserted",
		"insert: 4: inserted",
		"insert: 5: inserted",
		"backward-empty: 5: removed",
		"backward-empty: 4: removed",
		"backward-empty: 3: removed",
		"backward-empty: 2: removed",
		"backward-empty: 1: removed",
	}, lines(out))
}

// TestScenario5 matches spec.md §8 scenario 5.
func TestScenario5(t *testing.T) {
	out, _, err := run(t, "f 42\nd 42\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"find: 42: not found",
		"delete: 42: not found",
	}, lines(out))
}

// TestScenario6 matches spec.md §8 scenario 6: a large random sequence
// with duplicates, checking a strictly ascending, duplicate-free listing.
func TestScenario6(t *testing.T) {
	var script strings.Builder
	rng := newRNG(7)
	seen := map[int64]bool{}
	var unique []int64
	for i := 0; i < 1000; i++ {
		v := rng.next()%2000001 - 1000000
		script.WriteString("i ")
		script.WriteString(itoa(v))
		script.WriteString("\n")
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	script.WriteString("fl\n")

	out, _, err := run(t, script.String(), false)
	require.NoError(t, err)

	ls := lines(out)
	require.Len(t, ls, 1000+len(unique))
	listed := ls[1000:]
	require.Len(t, listed, len(unique))

	sortInt64s(unique)
	for i, v := range listed {
		require.Equal(t, "forward-list: "+itoa(unique[i]), v)
	}
}

func TestCommentHandling(t *testing.T) {
	out, _, err := run(t, "# a comment\n\ni 1\nfl\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"# a comment",
		"",
		"insert: 1: inserted",
		"forward-list: 1",
	}, lines(out))
}

func TestCommentsNotEchoedInteractively(t *testing.T) {
	out, errOut, err := run(t, "# a comment\ni 1\n", true)
	require.NoError(t, err)
	require.Equal(t, []string{"insert: 1: inserted"}, lines(out))
	require.Contains(t, errOut, CommandList)
}

func TestUnknownCommandIsDiagnosticNotFatal(t *testing.T) {
	out, errOut, err := run(t, "bogus\ni 1\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{"insert: 1: inserted"}, lines(out))
	require.Contains(t, errOut, "unknown command")
}

func TestBadIntegerIsDiagnosticNotFatal(t *testing.T) {
	out, errOut, err := run(t, "i 5x\ni 1\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{"insert: 1: inserted"}, lines(out))
	require.Contains(t, errOut, "invalid integer")
}

func TestOverlongLineIsFatal(t *testing.T) {
	script := strings.Repeat("9", maxLineLength*2)
	_, _, err := run(t, script, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOverlongLine))
}

func TestQuitStopsEarly(t *testing.T) {
	out, _, err := run(t, "i 1\nq\ni 2\nfl\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{"insert: 1: inserted"}, lines(out))
}

func TestCountAndValidateCommands(t *testing.T) {
	out, _, err := run(t, "i 1\ni 2\ncount\nvalidate\n", false)
	require.NoError(t, err)
	require.Equal(t, []string{
		"insert: 1: inserted",
		"insert: 2: inserted",
		"count: 2",
		"validate: ok",
	}, lines(out))
}

// --- tiny deterministic helpers kept local so this test file has no
// extra dependency beyond testify. ---

type rng struct{ state uint64 }

func newRNG(seed uint64) *rng { return &rng{state: seed*2654435761 + 1} }

func (r *rng) next() int64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	v := int64(r.state)
	if v < 0 {
		v = -v
	}
	return v
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [32]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func sortInt64s(s []int64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
