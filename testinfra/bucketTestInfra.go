package testinfra

import (
	"context"
	"errors"
	"flyerboard/client/blob"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrInjected = errors.New("injected bucket failure")

// MemoryBucket is an in-memory blob.Bucket. Setting FailPut or FailDelete
// makes the matching operation return ErrInjected.
type MemoryBucket struct {
	mu      sync.Mutex
	objects map[string]memoryObject

	FailPut    bool
	FailDelete bool
	Now        func() time.Time
}

type memoryObject struct {
	data         []byte
	lastModified time.Time
}

func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{objects: map[string]memoryObject{}, Now: time.Now}
}

func (b *MemoryBucket) PutObject(ctx context.Context, key string, r io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailPut {
		return ErrInjected
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = memoryObject{data: data, lastModified: b.Now()}
	return nil
}

func (b *MemoryBucket) DeleteObject(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailDelete {
		return ErrInjected
	}
	delete(b.objects, key)
	return nil
}

func (b *MemoryBucket) ObjectURL(key string) string {
	return blob.PublicURL("https://files.example.com", key)
}

func (b *MemoryBucket) ListObjects(ctx context.Context, prefix string) ([]blob.ObjectInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := []blob.ObjectInfo{}
	for k, o := range b.objects {
		if strings.HasPrefix(k, prefix) {
			result = append(result, blob.ObjectInfo{Key: k, LastModified: o.lastModified})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (b *MemoryBucket) Object(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, found := b.objects[key]
	return o.data, found
}

func (b *MemoryBucket) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := []string{}
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
