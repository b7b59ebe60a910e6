// Package fetchcache models an L1 instruction cache in front of the boot
// ROM, built on Akita cache components. The model is observational: the
// sequencer's phase progression is fixed, so the cache reports locality
// and modeled latency without altering architectural results.
package fetchcache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Backing is the next memory level behind the cache; the boot ROM
// satisfies it.
type Backing interface {
	// Fetch returns the word at the given byte address.
	Fetch(addr uint64) uint32
}

// AccessResult describes one fetch through the cache.
type AccessResult struct {
	// Hit indicates whether the line was already resident.
	Hit bool

	// Latency is the modeled cost of this fetch in cycles.
	Latency uint64

	// Word is the instruction word read.
	Word uint32

	// Evicted indicates a resident line was displaced by the fill.
	Evicted bool

	// EvictedAddr is the block-aligned address of the displaced line.
	EvictedAddr uint64
}

// Stats holds cache performance statistics.
type Stats struct {
	Fetches   uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64

	// LatencyCycles accumulates the modeled latency of every fetch.
	LatencyCycles uint64
}

// HitRate returns the fraction of fetches served from a resident line.
func (s Stats) HitRate() float64 {
	if s.Fetches == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Fetches)
}

// Cache is a read-only instruction cache. Lines are never dirty since the
// ROM cannot be written, so misses fill silently and evictions drop the
// line without a writeback.
type Cache struct {
	config Config

	// directory tracks tag, state, and LRU order via Akita.
	directory *akitacache.DirectoryImpl

	// lines holds the cached words, indexed by setID*associativity+wayID.
	lines [][]uint32

	backing Backing
	stats   Stats
}

// New creates a cache with the given configuration and backing store.
func New(config Config, backing Backing) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalLines := numSets * config.Associativity
	wordsPerLine := config.BlockSize / 4

	lines := make([][]uint32, totalLines)
	for i := range lines {
		lines[i] = make([]uint32, wordsPerLine)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		lines:   lines,
		backing: backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns a copy of the cache statistics.
func (c *Cache) Stats() Stats {
	return c.stats
}

// ResetStats clears the statistics without touching resident lines.
func (c *Cache) ResetStats() {
	c.stats = Stats{}
}

// Fetch reads the instruction word at the given byte address through the
// cache, filling from the backing store on a miss.
func (c *Cache) Fetch(addr uint64) AccessResult {
	c.stats.Fetches++

	blockSize := uint64(c.config.BlockSize)
	blockAddr := addr / blockSize * blockSize
	wordIdx := (addr % blockSize) >> 2

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.stats.LatencyCycles += c.config.HitLatency
		c.directory.Visit(block)

		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
			Word:    c.lines[c.lineIndex(block)][wordIdx],
		}
	}

	c.stats.Misses++
	c.stats.LatencyCycles += c.config.MissLatency
	return c.fill(blockAddr, wordIdx)
}

// fill handles a miss: pick a victim line, refill it from the backing
// store, and return the requested word.
func (c *Cache) fill(blockAddr, wordIdx uint64) AccessResult {
	result := AccessResult{Latency: c.config.MissLatency}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		// Degenerate geometry; serve straight from the backing store.
		result.Word = c.backing.Fetch(blockAddr + wordIdx*4)
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag
	}

	line := c.lines[c.lineIndex(victim)]
	for i := range line {
		line[i] = c.backing.Fetch(blockAddr + uint64(i)*4)
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	result.Word = line[wordIdx]
	return result
}

// lineIndex computes the index into lines for a directory block.
func (c *Cache) lineIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

// Reset invalidates every resident line and clears the statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Stats{}
}
