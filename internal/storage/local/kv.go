package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is the fast key-value layer: an in-memory map mirrored to a single
// JSON file. It is the authoritative read path of the local backend; the
// durable store behind it only serves recovery.
type KV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenKV loads the store from path, starting empty when the file does not
// exist yet.
func OpenKV(path string) (*KV, error) {
	kv := &KV{
		path: path,
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler armazenamento local: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, fmt.Errorf("armazenamento local corrompido: %w", err)
		}
	}

	return kv, nil
}

// Get returns the stored value verbatim.
func (kv *KV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.data[key]
	return v, ok
}

// Set stores the value and persists the whole map. The write goes through a
// temp file and a rename so a crash never leaves a half-written store.
func (kv *KV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return kv.persist()
}

// Delete removes the key, persisting when it existed.
func (kv *KV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if _, ok := kv.data[key]; !ok {
		return nil
	}
	delete(kv.data, key)
	return kv.persist()
}

// Keys returns a snapshot of all stored keys.
func (kv *KV) Keys() []string {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	keys := make([]string, 0, len(kv.data))
	for k := range kv.data {
		keys = append(keys, k)
	}
	return keys
}

func (kv *KV) persist() error {
	raw, err := json.Marshal(kv.data)
	if err != nil {
		return fmt.Errorf("erro ao serializar armazenamento local: %w", err)
	}

	tmp := kv.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(kv.path), 0o700); err != nil {
		return fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("erro ao gravar armazenamento local: %w", err)
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		return fmt.Errorf("erro ao gravar armazenamento local: %w", err)
	}
	return nil
}
