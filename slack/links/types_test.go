package links

import (
	"testing"

	"github.com/tychoish/fun/assert/check"
)

func TestSlackLink(t *testing.T) {
	link := NewSlackLink("https://example.com/a?b=1&c=2", "s3://results/run.csv")
	check.Equal(t, "https://example.com/a?b=1&c=2", link.String())
	check.Equal(t, "<https://example.com/a?b=1&amp;c=2|s3://results/run.csv>", link.SlackFormat())

	check.Equal(t, "<https://example.com>", NewSlackLink("https://example.com", "").SlackFormat())
	check.Equal(t, "<https://example.com|a ¦ &lt;b&gt;>", NewSlackLink("https://example.com", "a | <b>").SlackFormat())
}
