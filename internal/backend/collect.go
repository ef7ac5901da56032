package backend

import (
	"strings"
	"unicode/utf8"
)

// Limits bound how much of a TokenStream is consumed.
type Limits struct {
	MaxTokens int
	MaxChars  int
}

// DefaultLimits cap generation at 256 fragments and 8000 characters.
var DefaultLimits = Limits{MaxTokens: 256, MaxChars: 8000}

// StopReason says why Collect stopped pulling.
type StopReason string

const (
	StopEnd    StopReason = "end"
	StopTokens StopReason = "tokens"
	StopLength StopReason = "length"
)

// Collected is the accumulated output of a stream.
type Collected struct {
	Text   string
	Tokens int
	Reason StopReason
}

// Collect pulls fragments until the stream ends, MaxTokens fragments were
// consumed, or the accumulated text exceeds MaxChars characters; whatever
// remains is abandoned. The returned text is cut to MaxChars characters.
// The error is the stream's own failure, reported only when it ended by itself.
func Collect(s TokenStream, lim Limits) (Collected, error) {
	var (
		b     strings.Builder
		chars int
		out   = Collected{Reason: StopEnd}
	)
	for out.Tokens < lim.MaxTokens {
		tok, ok := s.Next()
		if !ok {
			break
		}
		out.Tokens++
		b.WriteString(tok)
		chars += utf8.RuneCountInString(tok)
		if chars > lim.MaxChars {
			out.Reason = StopLength
			break
		}
	}
	if out.Reason == StopEnd && out.Tokens >= lim.MaxTokens {
		out.Reason = StopTokens
	}
	var err error
	if out.Reason == StopEnd {
		err = s.Err()
	}
	_ = s.Close()

	out.Text = b.String()
	if chars > lim.MaxChars {
		out.Text = truncateRunes(out.Text, lim.MaxChars)
	}
	return out, err
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
