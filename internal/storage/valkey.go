package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"
)

// ValkeyKV is a KV on a Redis-protocol server (Valkey, Redis, miniredis).
// It lets several SSH portal processes share one analytics state.
type ValkeyKV struct {
	client valkey.Client
}

// OpenValkey connects to addr and verifies the connection with PING.
func OpenValkey(ctx context.Context, addr string) (*ValkeyKV, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("storage: valkey addr is empty")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create valkey client: %w", err)
	}

	kv := NewValkeyKV(client)
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: valkey ping failed: %w", err)
	}
	return kv, nil
}

// NewValkeyKV wraps an existing client.
func NewValkeyKV(client valkey.Client) *ValkeyKV {
	return &ValkeyKV{client: client}
}

// Get implements KV.
func (v *ValkeyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := v.client.B().Get().Key(key).Build()
	value, err := v.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: valkey get %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV. Values never expire.
func (v *ValkeyKV) Set(ctx context.Context, key string, value []byte) error {
	cmd := v.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("storage: valkey set %q: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (v *ValkeyKV) Delete(ctx context.Context, key string) error {
	cmd := v.client.B().Del().Key(key).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("storage: valkey del %q: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (v *ValkeyKV) Close() error {
	v.client.Close()
	return nil
}

var _ KV = (*ValkeyKV)(nil)
