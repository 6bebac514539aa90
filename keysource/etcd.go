package keysource

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdConfig configures the etcd connection.
type EtcdConfig struct {
	// Endpoints lists the etcd members, e.g. "localhost:2379".
	Endpoints []string

	// Key is the etcd key holding the codec key.
	Key string

	// Encoding of the stored value.
	Encoding Encoding

	// DialTimeout defaults to 5s.
	DialTimeout time.Duration

	// TLS enables mutual TLS when set and Enabled.
	TLS *TLSConfig
}

// Etcd reads a key from etcd.
type Etcd struct {
	kv       clientv3.KV
	closer   func() error
	key      string
	encoding Encoding
}

// NewEtcd creates an etcd client. Connections are established lazily, so use
// Ping to verify reachability.
func NewEtcd(cfg EtcdConfig) (*Etcd, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("keysource: etcd endpoints cannot be empty")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("keysource: etcd key name is required")
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	clientCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
	}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		info, err := newTLSInfo(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		tlsConfig, err := info.ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		clientCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return &Etcd{kv: cli, closer: cli.Close, key: cfg.Key, encoding: cfg.Encoding}, nil
}

// NewEtcdFromKV reads key through an existing KV, such as a namespaced
// client or a *clientv3.Client shared with other code. The caller keeps
// ownership of kv.
func NewEtcdFromKV(kv clientv3.KV, key string, encoding Encoding) *Etcd {
	return &Etcd{kv: kv, key: key, encoding: encoding}
}

// Kind implements Source.
func (*Etcd) Kind() string { return "etcd" }

// KeyName implements Source.
func (e *Etcd) KeyName() string { return e.key }

// Fetch implements Source.
func (e *Etcd) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := e.kv.Get(ctx, e.key)
	if err != nil {
		return nil, fmt.Errorf("keysource: etcd get %s: %w", e.key, err)
	}
	if len(resp.Kvs) == 0 || len(resp.Kvs[0].Value) == 0 {
		return nil, fmt.Errorf("%w: etcd key %s", ErrNotFound, e.key)
	}
	return e.encoding.Decode(resp.Kvs[0].Value)
}

// Ping checks that etcd answers a read for the key. A missing key is not an
// error here.
func (e *Etcd) Ping(ctx context.Context) error {
	_, err := e.kv.Get(ctx, e.key, clientv3.WithCountOnly())
	return err
}

// Close releases the client created by NewEtcd. It is a no-op for sources
// built with NewEtcdFromKV.
func (e *Etcd) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer()
}
