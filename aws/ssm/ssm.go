package ssm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/Invicton-Labs/go-linkedlist/aws/credentials"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const parameterResourcePrefix = "parameter/"

var ssmClients = map[string]*ssm.Client{}
var ssmClientsLock sync.Mutex

// getSsmClient returns a client for the given region, or for the
// configured default region if region is empty.
func getSsmClient(ctx context.Context, region string) (*ssm.Client, stackerr.Error) {
	cfg, err := credentials.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	ssmClientsLock.Lock()
	defer ssmClientsLock.Unlock()
	if client, ok := ssmClients[region]; ok {
		return client, nil
	}
	client := ssm.NewFromConfig(*cfg, func(o *ssm.Options) {
		if region != "" {
			o.Region = region
		}
		o.Logger = log.GetAwsLogger()
	})
	ssmClients[region] = client
	return client, nil
}

// parameterRegion validates a parameter name or ARN and returns the region
// it must be fetched from. Plain names have no region.
func parameterRegion(parameter string) (string, stackerr.Error) {
	if parameter == "" {
		return "", stackerr.Errorf("SSM parameter name is empty")
	}
	if !arn.IsARN(parameter) {
		return "", nil
	}
	a, err := arn.Parse(parameter)
	if err != nil {
		return "", stackerr.Wrap(err)
	}
	if a.Service != "ssm" {
		return "", stackerr.Errorf("ARN is not for the SSM service: %s", parameter)
	}
	if !strings.HasPrefix(strings.ToLower(a.Resource), parameterResourcePrefix) {
		return "", stackerr.Errorf("SSM parameter ARN resource does not begin with 'parameter/': %s", parameter)
	}
	return a.Region, nil
}

// GetParameter fetches and decrypts a parameter by name or ARN. ARNs are
// fetched from the region in the ARN.
func GetParameter(ctx context.Context, parameter string) (string, stackerr.Error) {
	region, err := parameterRegion(parameter)
	if err != nil {
		return "", err
	}
	client, err := getSsmClient(ctx, region)
	if err != nil {
		return "", err
	}
	param, cerr := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(parameter),
		WithDecryption: aws.Bool(true),
	})
	if cerr != nil {
		return "", stackerr.Wrap(cerr)
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return "", stackerr.Errorf("SSM parameter has no value: %s", parameter)
	}
	return *param.Parameter.Value, nil
}

func GetParameterUnmarshaled[T any](ctx context.Context, parameter string) (*T, stackerr.Error) {
	strval, err := GetParameter(ctx, parameter)
	if err != nil {
		return nil, err
	}
	var t T
	if err := json.Unmarshal([]byte(strval), &t); err != nil {
		return nil, stackerr.Wrap(err)
	}
	return &t, nil
}
