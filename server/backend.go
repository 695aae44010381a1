package server

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/rueidis"
	"github.com/sicko7947/storybook"
	"github.com/sicko7947/storybook/store"
)

// OpenBackend builds the backend named by cfg.Backend. The returned close
// function releases its connections and is never nil.
func OpenBackend(ctx context.Context, cfg Config) (storybook.Backend, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		return store.NewMemoryBackend(), noop, nil

	case BackendSQLite:
		backend, err := store.OpenSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return backend, backend.Close, nil

	case BackendRedis:
		client, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress:  []string{cfg.RedisAddr},
			DisableCache: true,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		closeFn := func() error {
			client.Close()
			return nil
		}
		return store.NewRedisBackend(client), closeFn, nil

	case BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("load aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg)
		return store.NewDynamoDBBackend(client, cfg.DynamoDBTable), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
