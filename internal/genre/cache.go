package genre

// Cache remembers the outcome of genre lookups per (artist, album) pair.
//
// Failures are cached too, so a batch asks the service at most once per
// pair. A Cache belongs to one batch and is not safe for concurrent use.
type Cache struct {
	entries map[string]map[string]Result
}

// Result is the outcome of one lookup.
type Result struct {
	Genre string
	Err   error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]map[string]Result)}
}

// Get returns the cached result and whether one exists.
func (c *Cache) Get(artist, album string) (Result, bool) {
	r, ok := c.entries[artist][album]
	return r, ok
}

// Put stores the outcome of a lookup.
func (c *Cache) Put(artist, album string, r Result) {
	albums, ok := c.entries[artist]
	if !ok {
		albums = make(map[string]Result)
		c.entries[artist] = albums
	}
	albums[album] = r
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	n := 0
	for _, albums := range c.entries {
		n += len(albums)
	}
	return n
}
