package links

import (
	"fmt"
	"strings"
)

type SlackLink interface {
	fmt.Stringer
	SlackFormat() string
}

type slackLink struct {
	url    string
	pretty string
}

// Slack mrkdwn treats these as control characters.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (sl slackLink) String() string {
	return sl.url
}

// SlackFormat renders the link in Slack's "<url|text>" form, or just
// "<url>" if there is no display text.
func (sl slackLink) SlackFormat() string {
	if sl.pretty == "" {
		return "<" + escaper.Replace(sl.url) + ">"
	}
	return "<" + escaper.Replace(sl.url) + "|" + strings.ReplaceAll(escaper.Replace(sl.pretty), "|", "¦") + ">"
}

func NewSlackLink(url string, prettyText string) SlackLink {
	return slackLink{
		url:    url,
		pretty: prettyText,
	}
}
