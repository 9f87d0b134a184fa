package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/valkey-io/valkey-go"
)

const valkeyOpTimeout = 3 * time.Second

// ValkeyStore keeps the token in Valkey, for setups where the client runs on
// a shared host and the session has to outlive any one machine.
type ValkeyStore struct {
	client valkey.Client
}

func NewValkeyStore() (*ValkeyStore, error) {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	valkeyPassword := os.Getenv("VALKEY_PASSWORD")
	useTLS := os.Getenv("VALKEY_TLS") == "true"

	opts := valkey.ClientOption{
		InitAddress:      []string{valkeyAddr},
		Password:         valkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyStore] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), valkeyOpTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyStore] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyStore] Successfully connected to valkey")
	return &ValkeyStore{client: client}, nil
}

func (v *ValkeyStore) Get() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyOpTimeout)
	defer cancel()

	res := v.client.Do(ctx, v.client.B().Get().Key(TokenKey).Build())
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", err
	}
	return res.ToString()
}

func (v *ValkeyStore) Set(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyOpTimeout)
	defer cancel()

	return v.client.Do(ctx, v.client.B().Set().Key(TokenKey).Value(token).Build()).Error()
}

func (v *ValkeyStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), valkeyOpTimeout)
	defer cancel()

	return v.client.Do(ctx, v.client.B().Del().Key(TokenKey).Build()).Error()
}

func (v *ValkeyStore) Close() error {
	v.client.Close()
	return nil
}
