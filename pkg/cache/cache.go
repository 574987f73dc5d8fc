package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface.
type Service interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (any, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	MSet(ctx context.Context, entries map[string]any, ttl time.Duration) error
	MGet(ctx context.Context, keys ...string) (map[string]any, error)
}

// MGetTyped retrieves multiple keys and unmarshals to a typed map.
// Keys with missing or invalid values are omitted.
func MGetTyped[T any](ctx context.Context, c Service, keys ...string) (map[string]T, error) {
	if len(keys) == 0 {
		return make(map[string]T), nil
	}

	rawResults, err := c.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	typedResults := make(map[string]T, len(rawResults))
	for key, rawValue := range rawResults {
		data, ok := rawValue.([]byte)
		if !ok {
			if data, err = json.Marshal(rawValue); err != nil {
				continue
			}
		}
		var obj T
		if err := json.Unmarshal(data, &obj); err != nil {
			continue
		}
		typedResults[key] = obj
	}

	return typedResults, nil
}
