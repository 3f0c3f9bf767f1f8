package credentials

import (
	"context"
	"sync"

	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

var commonCfg *aws.Config
var configLock sync.Mutex

// GetConfig loads the default AWS config the first time it is called and
// returns the same config afterwards. A failed load is retried on the next call.
func GetConfig(ctx context.Context) (*aws.Config, stackerr.Error) {
	configLock.Lock()
	defer configLock.Unlock()
	if commonCfg != nil {
		return commonCfg, nil
	}
	newCfg, err := config.LoadDefaultConfig(ctx, config.WithLogger(log.GetAwsLogger()))
	if err != nil {
		return nil, stackerr.Wrap(err)
	}
	commonCfg = &newCfg
	return commonCfg, nil
}

func GetCredentialsProvider(ctx context.Context) (aws.CredentialsProvider, stackerr.Error) {
	cfg, err := GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Credentials, nil
}
