package taskname

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	name := Format("my_stream_group", 3, "ab12cd")
	require.Equal(t, "my_stream_group_3_ab12cd", name)

	parsed, err := Parse(name)
	require.NoError(t, err)
	require.Equal(t, "my_stream_group", parsed.TaskPrefix)
	require.Equal(t, int64(3), parsed.Generation)
	require.Equal(t, "ab12cd", parsed.RandomSuffix)
}

func TestParseSplitsOnLastTwoUnderscores(t *testing.T) {
	t.Parallel()

	// taskPrefix itself contains underscores; naive first-split parsing
	// would mangle this.
	parsed, err := Parse("a_b_c_7_deadbeef")
	require.NoError(t, err)
	require.Equal(t, "a_b_c", parsed.TaskPrefix)
	require.Equal(t, int64(7), parsed.Generation)
	require.Equal(t, "deadbeef", parsed.RandomSuffix)
}

func TestParseRejectsMalformedNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "noUnderscores", "only_one", "prefix_notanumber_suffix", "_1_suffix"} {
		_, err := Parse(name)
		require.Error(t, err, "name %q should fail to parse", name)
	}
}

func TestNextIncrementsGeneration(t *testing.T) {
	t.Parallel()

	next := Next("ds", 4)
	parsed, err := Parse(next)
	require.NoError(t, err)
	require.Equal(t, "ds", parsed.TaskPrefix)
	require.Equal(t, int64(5), parsed.Generation)
	require.NotEmpty(t, parsed.RandomSuffix)
}

func TestNewSuffixIsNotConstant(t *testing.T) {
	t.Parallel()

	a := NewSuffix()
	b := NewSuffix()
	require.NotEqual(t, a, b)
}
