package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Invicton-Labs/go-linkedlist/aws/s3"
	"github.com/Invicton-Labs/go-linkedlist/aws/ssm"
	"github.com/Invicton-Labs/go-linkedlist/benchmark"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-linkedlist/slack/links"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/slack-go/slack"
)

// TokenParameter is the JSON form a Slack token may be stored in.
type TokenParameter struct {
	Token string `json:"token"`
}

type slackLogger struct {
	ddl log.DynamicDefaultLogger
}

func (sl *slackLogger) Output(calldepth int, message string) error {
	sl.ddl.Logger().WithAdditionalSkippedFrames(calldepth+1).Debugw(strings.TrimSpace(message))
	return nil
}

type Client struct {
	*slack.Client
}

// GetToken loads a bot token from an SSM parameter holding either the raw
// token or a JSON object with a "token" key.
func GetToken(ctx context.Context, ssmParamName string) (string, stackerr.Error) {
	value, err := ssm.GetParameter(ctx, ssmParamName)
	if err != nil {
		return "", err
	}
	return parseToken(value)
}

func parseToken(value string) (string, stackerr.Error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") {
		parameter := TokenParameter{}
		if err := json.Unmarshal([]byte(value), &parameter); err != nil {
			return "", stackerr.Wrap(err)
		}
		value = parameter.Token
	}
	if value == "" {
		return "", stackerr.Errorf("No Slack token found in parameter")
	}
	return value, nil
}

func NewClient(token string, httpClient *http.Client, options ...slack.Option) *Client {
	options = append([]slack.Option{
		slack.OptionDebug(false),
		slack.OptionHTTPClient(httpClient),
		slack.OptionLog(&slackLogger{
			ddl: log.NewDynamicDefaultLogger(func(input log.NewInput) log.NewInput {
				input.InitialFields["slack"] = true
				return input
			}),
		}),
	}, options...)
	return &Client{
		Client: slack.New(token, options...),
	}
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

func resultsText(resultsURI string) string {
	if object, err := s3.ParseURI(resultsURI); err == nil {
		return links.NewSlackLink(object.ConsoleURL(), object.String()).SlackFormat()
	}
	return "`" + resultsURI + "`"
}

// SummaryBlocks renders a benchmark summary as Slack blocks.
func SummaryBlocks(summary benchmark.Summary, resultsURI string) []slack.Block {
	now := time.Now()
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Sizes sorted:*\n%d", summary.Rows), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Total sort time:*\n%s", formatDuration(summary.Total)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Slowest size:*\n%d", summary.Slowest.Size), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Slowest sort:*\n%s", formatDuration(summary.Slowest.Elapsed)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Peak memory in use:*\n%d MiB", summary.PeakInUseMiB), false, false),
	}
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Merge sort benchmark", false, false)),
		slack.NewSectionBlock(nil, fields, nil),
	}
	if resultsURI != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Results:* "+resultsText(resultsURI), false, false),
			nil, nil,
		))
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Run:* %s  *Seed:* %d  *Finished:* <!date^%d^{date_num} {time_secs}|%s>", summary.RunID, summary.Seed, now.Unix(), now.UTC().Format(time.RFC3339)), false, false),
	))
	return blocks
}

// PostBenchmarkSummary posts the summary to the channel and returns the
// timestamp of the new message.
func (c *Client) PostBenchmarkSummary(ctx context.Context, channel string, summary benchmark.Summary, resultsURI string) (string, stackerr.Error) {
	fallback := fmt.Sprintf("Merge sort benchmark: %d sizes sorted in %s", summary.Rows, formatDuration(summary.Total))
	_, timestamp, err := c.PostMessageContext(ctx, channel,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(SummaryBlocks(summary, resultsURI)...),
	)
	if err != nil {
		return "", stackerr.Wrap(err).With(map[string]any{
			"channel": channel,
		})
	}
	log.FromContext(ctx).Infow("Posted benchmark summary to Slack", "channel", channel, "timestamp", timestamp, "run_id", summary.RunID)
	return timestamp, nil
}
