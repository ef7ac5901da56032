package backend

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sliceStream serves fixed fragments and records how far it was pulled.
type sliceStream struct {
	toks   []string
	pulled int
	err    error
	closed bool
}

func (s *sliceStream) Next() (string, bool) {
	if s.closed || s.pulled >= len(s.toks) {
		return "", false
	}
	s.pulled++
	return s.toks[s.pulled-1], true
}

func (s *sliceStream) Err() error   { return s.err }
func (s *sliceStream) Close() error { s.closed = true; return nil }

func repeat(tok string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = tok
	}
	return out
}

func TestCollectStopsAtTokenCap(t *testing.T) {
	s := &sliceStream{toks: repeat("a", 300)}
	got, err := Collect(s, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, 256, len(got.Text))
	require.Equal(t, 256, got.Tokens)
	require.Equal(t, StopTokens, got.Reason)
	require.Equal(t, 256, s.pulled, "must not pull past the token cap")
	require.True(t, s.closed)
}

func TestCollectStopsOnceLengthExceeded(t *testing.T) {
	// 100-char fragments: the 81st pushes the total past 8000.
	s := &sliceStream{toks: repeat(strings.Repeat("x", 100), 200)}
	got, err := Collect(s, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, 81, s.pulled)
	require.Equal(t, StopLength, got.Reason)
	require.Equal(t, 8000, len(got.Text))
	require.True(t, s.closed)
}

func TestCollectExactlyAtLengthKeepsGoing(t *testing.T) {
	s := &sliceStream{toks: append(repeat(strings.Repeat("y", 100), 80), "z")}
	got, err := Collect(s, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, 81, s.pulled)
	require.Equal(t, StopLength, got.Reason)
	require.Equal(t, strings.Repeat("y", 8000), got.Text)
}

func TestCollectCountsCharactersNotBytes(t *testing.T) {
	s := &sliceStream{toks: repeat("é", 10)}
	got, err := Collect(s, Limits{MaxTokens: 256, MaxChars: 5})
	require.NoError(t, err)
	require.Equal(t, "ééééé", got.Text)
	require.Equal(t, 6, s.pulled)
}

func TestCollectNaturalEnd(t *testing.T) {
	s := &sliceStream{toks: []string{"Hello", ",", " world"}}
	got, err := Collect(s, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, "Hello, world", got.Text)
	require.Equal(t, StopEnd, got.Reason)
}

func TestCollectReportsStreamError(t *testing.T) {
	boom := errors.New("decode failed")
	s := &sliceStream{toks: []string{"par"}, err: boom}
	got, err := Collect(s, DefaultLimits)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "par", got.Text)
}

func TestCollectIgnoresErrorAfterCap(t *testing.T) {
	s := &sliceStream{toks: repeat("a", 10), err: errors.New("late")}
	_, err := Collect(s, Limits{MaxTokens: 3, MaxChars: 8000})
	require.NoError(t, err)
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "ab", truncateRunes("abc", 2))
	require.Equal(t, "abc", truncateRunes("abc", 5))
	require.Equal(t, "日本", truncateRunes("日本語", 2))
	require.Equal(t, "", truncateRunes("abc", 0))
}
