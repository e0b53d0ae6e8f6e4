package seqbuf

// Sizing and bounds.
const (
	DefaultCapacity = 16
	minCapacity     = 1

	// MaxCapacity caps doubling so the backing array never exceeds 8 GiB of
	// uint64 values.
	MaxCapacity = 1 << 30
)
