package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/keyring"
	"github.com/julianstephens/quitnow/internal/storage"
)

const (
	// HashKey holds every record as a field of a single Redis hash
	HashKey = constants.AppName + ":records"
	// markerField is written by Init so Load can tell an initialized store from an empty server
	markerField = constants.AppName + ":initialized"

	opTimeout = 5 * time.Second
)

var ErrEmbeddedPassword = errors.New("redis URL must not contain a password; set " + constants.EnvRedisPassword + " instead")

// keyringPassword is swapped in tests
var keyringPassword = func() string {
	pw, err := keyring.Get(keyring.RedisPasswordEntry)
	if err != nil {
		return ""
	}
	return pw
}

var _ storage.Provider = (*Store)(nil)

type Store struct {
	url    string
	client *goredis.Client
}

func New(url string) *Store {
	return &Store{url: url}
}

// IsRedisURL reports whether config selects the Redis backend
func IsRedisURL(config string) bool {
	return strings.HasPrefix(config, "redis://") || strings.HasPrefix(config, "rediss://")
}

// ParseOptions builds client options from a redis:// URL, taking the password
// from the environment or, failing that, the OS keyring.
func ParseOptions(url string) (*goredis.Options, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if opts.Password != "" {
		return nil, ErrEmbeddedPassword
	}
	opts.Password = os.Getenv(constants.EnvRedisPassword)
	if opts.Password == "" {
		opts.Password = keyringPassword()
	}
	opts.DialTimeout = 10 * time.Second
	opts.ReadTimeout = 30 * time.Second
	opts.WriteTimeout = 30 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 1
	return opts, nil
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}

	opts, err := ParseOptions(s.url)
	if err != nil {
		return err
	}
	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	s.client = client
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.client.HSet(ctx, HashKey, markerField, "true").Err(); err != nil {
		return fmt.Errorf("failed to initialize redis storage: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	ok, err := s.client.HExists(ctx, HashKey, markerField).Result()
	if err != nil {
		return fmt.Errorf("failed to read redis storage: %w", err)
	}
	if !ok {
		return fmt.Errorf("storage not initialized, run 'quitnow init' first")
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := s.client.HGet(ctx, HashKey, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(key string, value []byte) error {
	if s.client == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.HSet(ctx, HashKey, key, value).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if s.client == nil {
		return fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.HDel(ctx, HashKey, key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	fields, err := s.client.HKeys(ctx, HashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != markerField {
			keys = append(keys, f)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}
