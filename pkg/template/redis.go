package template

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Arunachalam-140897/DevEngine/pkg/defaults"
	"github.com/Arunachalam-140897/DevEngine/pkg/errors"
)

const (
	keyPrefix = "devengine:template:"
	indexKey  = "devengine:templates"

	fieldContent   = "content"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// RedisStore keeps each template in a hash at devengine:template:{name} and
// indexes names in the set devengine:templates.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore returns a RedisStore for addr. The connection is lazy; use
// Ping to check it.
func NewRedisStore(addr string) *RedisStore {
	return NewRedisStoreWithClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  defaults.RedisDialTimeout,
		ReadTimeout:  defaults.RedisOperationTimeout,
		WriteTimeout: defaults.RedisOperationTimeout,
	}))
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func templateKey(name string) string {
	return keyPrefix + name
}

func unavailable(op string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeUnavailable,
		fmt.Sprintf("template store %s failed", op), err, map[string]any{"store": "redis"})
}

// Ping tests the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Save writes the template in one transaction. created_at is only set when
// the hash does not have one yet.
func (s *RedisStore) Save(ctx context.Context, name, content string) (*Template, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	key := templateKey(name)
	now := s.now().Format(time.RFC3339Nano)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, fieldCreatedAt, now)
		pipe.HSet(ctx, key, fieldContent, content, fieldUpdatedAt, now)
		pipe.SAdd(ctx, indexKey, name)
		return nil
	})
	if err != nil {
		return nil, unavailable("save", err)
	}

	return s.Get(ctx, name)
}

func (s *RedisStore) Get(ctx context.Context, name string) (*Template, error) {
	vals, err := s.client.HGetAll(ctx, templateKey(name)).Result()
	if err != nil {
		return nil, unavailable("get", err)
	}
	if len(vals) == 0 {
		return nil, notFound(name)
	}
	return fromHash(name, vals)
}

// List reads the index and loads every template in one pipeline. Names whose
// hash has vanished are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Template, error) {
	names, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, unavailable("list", err)
	}
	sort.Strings(names)

	cmds := make([]*redis.StringStringMapCmd, len(names))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, name := range names {
			cmds[i] = pipe.HGetAll(ctx, templateKey(name))
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, unavailable("list", err)
	}

	out := make([]Template, 0, len(names))
	for i, name := range names {
		vals, err := cmds[i].Result()
		if err != nil || len(vals) == 0 {
			continue
		}
		t, err := fromHash(name, vals)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, templateKey(name))
		pipe.SRem(ctx, indexKey, name)
		return nil
	})
	if err != nil {
		return unavailable("delete", err)
	}
	if del.Val() == 0 {
		return notFound(name)
	}
	return nil
}

// Close closes the connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// fromHash decodes a template hash.
func fromHash(name string, vals map[string]string) (*Template, error) {
	t := &Template{Name: name, Content: vals[fieldContent]}
	for field, dst := range map[string]*time.Time{
		fieldCreatedAt: &t.CreatedAt,
		fieldUpdatedAt: &t.UpdatedAt,
	} {
		v, ok := vals[field]
		if !ok {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal,
				fmt.Sprintf("template %q has invalid %s", name, field), err)
		}
		*dst = ts
	}
	return t, nil
}
