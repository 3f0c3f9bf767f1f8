package s3

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
)

func TestParseURI(t *testing.T) {
	t.Run("Scheme", func(t *testing.T) {
		object, err := ParseURI("s3://results/bench/2024/run.csv")
		assert.NotError(t, err)
		check.Equal(t, "results", object.Bucket)
		check.Equal(t, "bench/2024/run.csv", object.Key)
		check.Equal(t, "s3://results/bench/2024/run.csv", object.String())
	})
	t.Run("ARN", func(t *testing.T) {
		object, err := ParseURI("arn:aws:s3:::results/run.csv")
		assert.NotError(t, err)
		check.Equal(t, "results", object.Bucket)
		check.Equal(t, "run.csv", object.Key)
	})
	t.Run("Invalid", func(t *testing.T) {
		for _, uri := range []string{
			"",
			"https://example.com/run.csv",
			"s3://results",
			"s3://results/",
			"s3:///run.csv",
			"arn:aws:ssm:us-east-1:123456789012:parameter/token",
		} {
			_, err := ParseURI(uri)
			check.Error(t, err)
		}
	})
}

func TestConsoleURL(t *testing.T) {
	object := ObjectURI{Bucket: "results", Key: "bench/run 1.csv"}
	check.Equal(t, "https://s3.console.aws.amazon.com/s3/object/results?prefix=bench%2Frun+1.csv", object.ConsoleURL())
}

func TestBodyReader(t *testing.T) {
	text := "size,seconds\n"
	for name, content := range map[string]any{
		"String":        text,
		"StringPointer": &text,
		"Bytes":         []byte(text),
		"Buffer":        bytes.NewBufferString(text),
		"Reader":        strings.NewReader(text),
	} {
		t.Run(name, func(t *testing.T) {
			r, err := bodyReader(content)
			assert.NotError(t, err)
			data, rerr := io.ReadAll(r)
			assert.NotError(t, rerr)
			check.Equal(t, text, string(data))
		})
	}
	t.Run("NilStringPointer", func(t *testing.T) {
		var s *string
		_, err := bodyReader(s)
		check.Error(t, err)
	})
	t.Run("Unsupported", func(t *testing.T) {
		_, err := bodyReader(42)
		check.Error(t, err)
	})
}
