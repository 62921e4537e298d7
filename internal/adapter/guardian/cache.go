package guardian

import (
	"container/list"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/peterbourgon/diskv"
)

// DefaultCacheSize is the disk budget of the response cache.
const DefaultCacheSize int64 = 10 * 1024 * 1024

// DiskCache is an httpcache.Cache persisted with diskv that evicts the least
// recently used responses once the stored bytes exceed its budget.
type DiskCache struct {
	store    *diskv.Diskv
	basePath string
	maxBytes int64

	mu    sync.Mutex
	used  int64
	order *list.List
	index map[string]*list.Element
}

type cacheEntry struct {
	key  string
	size int64
}

var _ httpcache.Cache = (*DiskCache)(nil)

// NewDiskCache opens (or creates) a cache rooted at dir.
func NewDiskCache(dir string, maxBytes int64) (*DiskCache, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultCacheSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &DiskCache{
		store: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 0,
		}),
		basePath: dir,
		maxBytes: maxBytes,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCachingTransport wraps next with HTTP caching backed by cache.
func NewCachingTransport(cache httpcache.Cache, next http.RoundTripper) *httpcache.Transport {
	t := httpcache.NewTransport(cache)
	t.Transport = next
	return t
}

// Get returns the cached response stored under key.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	name := keyToFilename(key)
	data, err := c.store.Read(name)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	if el, ok := c.index[name]; ok {
		c.order.MoveToFront(el)
	}
	c.mu.Unlock()
	return data, true
}

// Set stores resp under key and evicts old entries past the budget.
func (c *DiskCache) Set(key string, resp []byte) {
	size := int64(len(resp))
	if size > c.maxBytes {
		return
	}

	name := keyToFilename(key)
	if err := c.store.Write(name, resp); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.forgetLocked(name)
	c.index[name] = c.order.PushFront(&cacheEntry{key: name, size: size})
	c.used += size
	c.evictLocked()
}

// Delete removes the response stored under key.
func (c *DiskCache) Delete(key string) {
	name := keyToFilename(key)
	_ = c.store.Erase(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.forgetLocked(name)
}

// Size returns the number of bytes currently held.
func (c *DiskCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

func (c *DiskCache) load() error {
	type stored struct {
		name    string
		size    int64
		modTime time.Time
	}

	var entries []stored
	for name := range c.store.Keys(nil) {
		info, err := os.Stat(filepath.Join(c.basePath, name))
		if err != nil {
			continue
		}
		entries = append(entries, stored{name: name, size: info.Size(), modTime: info.ModTime()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.index[e.name] = c.order.PushBack(&cacheEntry{key: e.name, size: e.size})
		c.used += e.size
	}
	c.evictLocked()
	return nil
}

func (c *DiskCache) evictLocked() {
	for c.used > c.maxBytes {
		el := c.order.Back()
		if el == nil {
			return
		}
		entry := el.Value.(*cacheEntry)
		_ = c.store.Erase(entry.key)
		c.forgetLocked(entry.key)
	}
}

func (c *DiskCache) forgetLocked(name string) {
	el, ok := c.index[name]
	if !ok {
		return
	}
	c.used -= el.Value.(*cacheEntry).size
	c.order.Remove(el)
	delete(c.index, name)
}

func keyToFilename(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
