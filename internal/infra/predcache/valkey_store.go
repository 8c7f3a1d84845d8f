package predcache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

// ValkeyStore persists estimates in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "carbon"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (float64, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode cached estimate: %w", err)
	}
	return value, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, value float64, ttl time.Duration) error {
	payload := strconv.FormatFloat(value, 'g', -1, 64)
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(payload)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:estimate:%s", s.prefix, key)
}

var _ footprint.Cache = (*ValkeyStore)(nil)
