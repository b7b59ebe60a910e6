package fetchcache

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the instruction cache geometry and modeled latencies.
type Config struct {
	// Size is the total cache capacity in bytes.
	Size int `json:"size"`

	// Associativity is the number of ways per set.
	Associativity int `json:"associativity"`

	// BlockSize is the cache line size in bytes. It must be a multiple of
	// the 4-byte instruction word.
	BlockSize int `json:"block_size"`

	// HitLatency is the modeled cost in cycles of a fetch that hits.
	HitLatency uint64 `json:"hit_latency"`

	// MissLatency is the modeled cost in cycles of a fetch that misses
	// and fills from the boot ROM.
	MissLatency uint64 `json:"miss_latency"`
}

// DefaultConfig returns a small geometry suited to boot-ROM sized images:
// 1 KiB, 2-way set associative, 16-byte lines.
func DefaultConfig() Config {
	return Config{
		Size:          1024,
		Associativity: 2,
		BlockSize:     16,
		HitLatency:    1,
		MissLatency:   10,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

// Validate checks the geometry for consistency.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Size)
	}
	if c.Associativity <= 0 {
		return fmt.Errorf("associativity must be positive, got %d", c.Associativity)
	}
	if c.BlockSize <= 0 || c.BlockSize%4 != 0 {
		return fmt.Errorf("block size must be a positive multiple of 4, got %d", c.BlockSize)
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("cache size %d is not a multiple of associativity %d x block size %d",
			c.Size, c.Associativity, c.BlockSize)
	}
	return nil
}
