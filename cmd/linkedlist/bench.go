package main

import (
	"os"

	"github.com/Invicton-Labs/go-linkedlist/aws/s3"
	"github.com/Invicton-Labs/go-linkedlist/benchmark"
	"github.com/Invicton-Labs/go-linkedlist/log"
	retryablehttp "github.com/Invicton-Labs/go-linkedlist/retryable-http"
	"github.com/Invicton-Labs/go-linkedlist/slack"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagStart           = "start"
	flagEnd             = "end"
	flagStep            = "step"
	flagSeed            = "seed"
	flagOutput          = "output"
	flagS3URI           = "s3-uri"
	flagSlackChannel    = "slack-channel"
	flagSlackToken      = "slack-token"
	flagSlackTokenParam = "slack-token-param"
)

const slackMaxRetries = 5

func addBenchFlags(cmd *cobra.Command) {
	defaults := benchmark.DefaultConfig()
	flags := cmd.Flags()
	flags.Int(flagStart, defaults.Start, "smallest list size")
	flags.Int(flagEnd, defaults.End, "exclusive upper bound for list sizes")
	flags.Int(flagStep, defaults.Step, "increment between list sizes")
	flags.Int64(flagSeed, 0, "shuffle seed (0 for a time-based seed)")
	flags.String(flagOutput, "results.csv", "CSV file to write size,seconds rows to")
	flags.String(flagS3URI, "", "upload the CSV to this s3://bucket/key after the run")
	flags.String(flagSlackChannel, "", "post a summary of the run to this Slack channel")
	flags.String(flagSlackToken, "", "Slack bot token (prefer the LINKEDLIST_SLACK_TOKEN environment variable)")
	flags.String(flagSlackTokenParam, "", "SSM parameter name or ARN holding the Slack bot token")
}

func benchConfig(v *viper.Viper) benchmark.Config {
	return benchmark.Config{
		Start: v.GetInt(flagStart),
		End:   v.GetInt(flagEnd),
		Step:  v.GetInt(flagStep),
		Seed:  v.GetInt64(flagSeed),
	}
}

func slackToken(cmd *cobra.Command, v *viper.Viper) (string, stackerr.Error) {
	if token := v.GetString(flagSlackToken); token != "" {
		return token, nil
	}
	if param := v.GetString(flagSlackTokenParam); param != "" {
		return slack.GetToken(cmd.Context(), param)
	}
	return "", stackerr.Errorf("A Slack channel was given but no token: set LINKEDLIST_SLACK_TOKEN or --%s", flagSlackTokenParam)
}

func publish(cmd *cobra.Command, v *viper.Viper, path string, summary benchmark.Summary) stackerr.Error {
	ctx := cmd.Context()
	resultsURI := path
	if uri := v.GetString(flagS3URI); uri != "" {
		data, cerr := os.ReadFile(path)
		if cerr != nil {
			return stackerr.Wrap(cerr)
		}
		if err := s3.PutObject(ctx, uri, data, &s3.PutObjectArgs{
			ContentType: aws.String("text/csv"),
		}); err != nil {
			return err
		}
		log.FromContext(ctx).Infow("Uploaded benchmark results", "uri", uri)
		resultsURI = uri
	}

	channel := v.GetString(flagSlackChannel)
	if channel == "" {
		return nil
	}
	token, err := slackToken(cmd, v)
	if err != nil {
		return err
	}
	client := slack.NewClient(token, retryablehttp.NewClient(&retryablehttp.NewClientInput{
		MaxRetries: slackMaxRetries,
	}))
	if _, err := client.PostBenchmarkSummary(ctx, channel, summary, resultsURI); err != nil {
		return err
	}
	return nil
}

func runBench(cmd *cobra.Command, v *viper.Viper) error {
	ctx := cmd.Context()
	cfg := benchConfig(v)
	path := v.GetString(flagOutput)
	summary, err := benchmark.WriteFile(ctx, cfg, path)
	if err != nil {
		log.FromContext(ctx).Error(err)
		return err
	}
	if err := publish(cmd, v, path, summary); err != nil {
		log.FromContext(ctx).Error(err)
		return err
	}
	return nil
}

func newBenchCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time merge sorts of shuffled lists and write the results as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, v)
		},
	}
	addBenchFlags(cmd)
	return cmd
}
