package consul

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/traverse/data"
)

// ConsulBackend lists the key hierarchy of the HashiCorp Consul KV store.
//
// Architecture:
// - Keys are split on '/' and every key is a file holding its value
// - Directories are virtual and exist as long as a key lives below them
// - A key with a trailing '/' (as created by the Consul UI) is a directory
// - Prefix is configurable (default: "/")
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string `yaml:"address"`

	// Token for Consul ACL authentication (optional)
	Token string `yaml:"token"`

	// Datacenter to use (optional)
	Datacenter string `yaml:"datacenter"`

	// Namespace for Consul Enterprise (optional)
	Namespace string `yaml:"namespace"`

	// Prefix for all keys in Consul KV (default: "/")
	// The path "/" of this backend lists the keys below the prefix.
	Prefix string `yaml:"prefix"`
}

// NewConsulBackend creates a new Consul-backed listing backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "/"
	}

	// Create Consul client
	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend
func (cb *ConsulBackend) Open(ctx context.Context) error {
	// Verifies the agent is reachable
	_, err := cb.client.Status().Leader()
	return err
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// buildKey constructs the full Consul KV key from the object key
func (cb *ConsulBackend) buildKey(key string) string {
	// Remove leading / from key if present
	key = strings.TrimPrefix(key, "/")

	// Handle "/" prefix specially - it means no prefix, just use the key
	if cb.config.Prefix == "/" {
		return key
	}

	// For other prefixes, ensure they end with /
	prefix := strings.TrimPrefix(cb.config.Prefix, "/")
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return strings.TrimSuffix(prefix+key, "/")
}

// childPrefix returns the Consul prefix under which the children of consulKey live.
func childPrefix(consulKey string) string {
	if consulKey == "" {
		return ""
	}
	return consulKey + "/"
}

func queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

// WriteFile stores value as the file at p.
func (cb *ConsulBackend) WriteFile(ctx context.Context, p string, value []byte) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair := &api.KVPair{
		Key:   cb.buildKey(p),
		Value: value,
	}

	_, err := cb.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// Remove deletes p and every key below it.
func (cb *ConsulBackend) Remove(ctx context.Context, p string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	consulKey := cb.buildKey(p)
	opts := (&api.WriteOptions{}).WithContext(ctx)

	if consulKey != "" {
		if _, err := cb.kv.Delete(consulKey, opts); err != nil {
			return err
		}
	}

	_, err := cb.kv.DeleteTree(childPrefix(consulKey), opts)
	return err
}

// Stat resolves p into a file when a key exists for it, or into a directory
// when any key lives below it.
func (cb *ConsulBackend) Stat(ctx context.Context, p string) (*data.Entry, error) {
	key, err := data.ToAbsolutePath(p)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, p, err)
	}

	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.stat(ctx, key)
}

func (cb *ConsulBackend) stat(ctx context.Context, key string) (*data.Entry, error) {
	consulKey := cb.buildKey(key)
	if consulKey == "" {
		return data.NewDirectoryEntry(key, 0755), nil
	}

	pair, _, err := cb.kv.Get(consulKey, queryOptions(ctx))
	if err != nil {
		return nil, toListingError(key, err)
	}
	if pair != nil {
		return data.NewFileEntry(key, int64(len(pair.Value)), 0644), nil
	}

	// Check if it's a virtual directory
	keys, _, err := cb.kv.Keys(childPrefix(consulKey), "/", queryOptions(ctx))
	if err != nil {
		return nil, toListingError(key, err)
	}
	if len(keys) == 0 {
		return nil, data.NewListingError(data.KindPathNotExist, key, nil)
	}

	return data.NewDirectoryEntry(key, 0755), nil
}

// ListChildren lists the keys and virtual directories directly below p in
// the lexical order Consul returns them.
func (cb *ConsulBackend) ListChildren(ctx context.Context, p string) ([]*data.Entry, error) {
	key, err := data.ToAbsolutePath(p)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, p, err)
	}

	cb.mu.RLock()
	defer cb.mu.RUnlock()

	dir, err := cb.stat(ctx, key)
	if err != nil {
		return nil, err
	}
	if !dir.IsDir() {
		return nil, data.NewListingError(data.KindNotDirectory, key, nil)
	}

	prefix := childPrefix(cb.buildKey(key))
	keys, _, err := cb.kv.Keys(prefix, "/", queryOptions(ctx))
	if err != nil {
		return nil, toListingError(key, err)
	}

	seen := make(map[string]bool, len(keys))
	entries := make([]*data.Entry, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, prefix)
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")

		// Folder key of the listed directory itself, or an empty path segment
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		childPath := path.Join(key, name)
		if isDir {
			entries = append(entries, data.NewDirectoryEntry(childPath, 0755))
			continue
		}

		pair, _, err := cb.kv.Get(k, queryOptions(ctx))
		if err != nil {
			return nil, toListingError(key, err)
		}
		if pair == nil {
			// Deleted between the key listing and the lookup
			continue
		}
		entries = append(entries, data.NewFileEntry(childPath, int64(len(pair.Value)), 0644))
	}

	return entries, nil
}

func toListingError(key string, err error) *data.ListingError {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return data.NewListingError(data.KindNotReadable, key, err)
		case http.StatusNotFound:
			return data.NewListingError(data.KindPathNotExist, key, err)
		}
	}

	return data.NewListingError(data.KindUnknown, key, err)
}
