package alloc

import (
	"flag"

	"github.com/pkg/errors"
)

type Config struct {
	// SlabSize is the size of each mapping small chunks are cut from.
	SlabSize int `yaml:"slab_size"`
	// ChunkSize is the unit small blocks are bump-allocated from.
	ChunkSize int `yaml:"chunk_size"`
	// MaxSmall is the largest request served from chunks. Larger requests
	// get a mapping of their own.
	MaxSmall int `yaml:"max_small"`
}

func DefaultConfig() Config {
	return Config{
		SlabSize:  1 << 24,
		ChunkSize: 1 << 18,
		MaxSmall:  1 << 15,
	}
}

func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("alloc.", f)
}

func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	def := DefaultConfig()
	f.IntVar(&cfg.SlabSize, prefix+"slab-size", def.SlabSize, "Bytes mapped at once for small allocations. Must be a multiple of the chunk size.")
	f.IntVar(&cfg.ChunkSize, prefix+"chunk-size", def.ChunkSize, "Bytes small allocations are carved from.")
	f.IntVar(&cfg.MaxSmall, prefix+"max-small", def.MaxSmall, "Largest allocation served from chunks; larger ones are mapped individually.")
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.ChunkSize <= 0 || cfg.ChunkSize%Align != 0:
		return errors.Errorf("chunk size %d must be a positive multiple of %d", cfg.ChunkSize, Align)
	case cfg.SlabSize < cfg.ChunkSize || cfg.SlabSize%cfg.ChunkSize != 0:
		return errors.Errorf("slab size %d must be a multiple of chunk size %d", cfg.SlabSize, cfg.ChunkSize)
	case cfg.MaxSmall < Align || cfg.MaxSmall%Align != 0:
		return errors.Errorf("max small %d must be a multiple of %d", cfg.MaxSmall, Align)
	case cfg.MaxSmall > cfg.ChunkSize:
		return errors.Errorf("max small %d exceeds chunk size %d", cfg.MaxSmall, cfg.ChunkSize)
	}
	return nil
}
