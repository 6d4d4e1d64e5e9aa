package config

import (
	"github.com/cockroachdb/errors"
	"github.com/redis/rueidis"
)

func NewRedisClient(addr string) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}

	return redisClient, nil
}
