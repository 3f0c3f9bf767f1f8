package s3

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/Invicton-Labs/go-linkedlist/aws/credentials"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultRegion = "us-east-1"

// ObjectURI identifies a single S3 object.
type ObjectURI struct {
	Bucket string
	Key    string
}

func (o ObjectURI) String() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// ConsoleURL is a link to the object in the AWS web console.
func (o ObjectURI) ConsoleURL() string {
	return "https://s3.console.aws.amazon.com/s3/object/" + url.PathEscape(o.Bucket) + "?prefix=" + url.QueryEscape(o.Key)
}

// ParseURI accepts either an "s3://bucket/key" URI or an S3 object ARN
// ("arn:aws:s3:::bucket/key").
func ParseURI(uri string) (ObjectURI, stackerr.Error) {
	var resource string
	switch {
	case awsarn.IsARN(uri):
		parsed, err := awsarn.Parse(uri)
		if err != nil {
			return ObjectURI{}, stackerr.Wrap(err)
		}
		if parsed.Service != "s3" {
			return ObjectURI{}, stackerr.Errorf("ARN is not for the S3 service: %s", uri)
		}
		resource = parsed.Resource
	case strings.HasPrefix(uri, "s3://"):
		resource = strings.TrimPrefix(uri, "s3://")
	default:
		return ObjectURI{}, stackerr.Errorf("Unrecognized S3 object URI (expected s3://bucket/key or an S3 ARN): %s", uri)
	}

	parts := strings.SplitN(resource, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ObjectURI{}, stackerr.Errorf("S3 object URI must include both a bucket and a key: %s", uri)
	}
	return ObjectURI{
		Bucket: parts[0],
		Key:    parts[1],
	}, nil
}

var s3Clients = map[string]*s3.Client{}
var s3ClientsLock sync.Mutex

func getS3Client(ctx context.Context) (*s3.Client, stackerr.Error) {
	cfg, err := credentials.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	s3ClientsLock.Lock()
	defer s3ClientsLock.Unlock()
	if client, ok := s3Clients[region]; ok {
		return client, nil
	}
	client := s3.NewFromConfig(*cfg, func(o *s3.Options) {
		o.Region = region
		o.Logger = log.GetAwsLogger()
	})
	s3Clients[region] = client
	return client, nil
}

type PutObjectArgs struct {
	ContentEncoding    *string
	ContentType        *string
	ContentLanguage    *string
	ContentDisposition *string
}

func bodyReader(content any) (io.Reader, stackerr.Error) {
	switch v := content.(type) {
	case string:
		return strings.NewReader(v), nil
	case *string:
		if v == nil {
			return nil, stackerr.Errorf("Content is a nil string pointer")
		}
		return strings.NewReader(*v), nil
	case []byte:
		return bytes.NewReader(v), nil
	case io.Reader:
		return v, nil
	default:
		return nil, stackerr.Errorf("Unknown content variable type: %T", content)
	}
}

// PutObject uploads content to the object at uri, using multipart uploads
// for large bodies and a SHA-256 checksum.
func PutObject[ContentType string | *string | []byte | *bytes.Reader | *strings.Reader | *gzip.Reader | *bytes.Buffer](ctx context.Context, uri string, content ContentType, args *PutObjectArgs) stackerr.Error {
	object, err := ParseURI(uri)
	if err != nil {
		return err
	}
	body, err := bodyReader(content)
	if err != nil {
		return err
	}
	client, err := getS3Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:            aws.String(object.Bucket),
		Key:               aws.String(object.Key),
		Body:              body,
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
		BucketKeyEnabled:  true,
	}
	if args != nil {
		input.ContentType = args.ContentType
		input.ContentEncoding = args.ContentEncoding
		input.ContentLanguage = args.ContentLanguage
		input.ContentDisposition = args.ContentDisposition
	}

	uploader := manager.NewUploader(client)
	if _, cerr := uploader.Upload(ctx, input); cerr != nil {
		return stackerr.Wrap(cerr)
	}
	log.FromContext(ctx).Debugw("Uploaded object to S3", "bucket", object.Bucket, "key", object.Key)
	return nil
}
