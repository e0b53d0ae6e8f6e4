package config

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/pflag"
)

const (
	DefaultDemoStart       uint64 = 27
	DefaultLimit           uint64 = 1_000_000
	DefaultInitialCapacity int    = 16
	DefaultLogLevel               = "info"
)

var (
	ErrInvalidDemoStart       = errors.New("demo start must be >= 1")
	ErrInvalidLimit           = errors.New("limit must be >= 1")
	ErrInvalidInitialCapacity = errors.New("initial capacity must be >= 1")
)

// Config holds the run parameters. Every field has a default that reproduces
// the reference report.
type Config struct {
	// ENV: HAILSTONE_DEMO_START
	DemoStart uint64 `env:"HAILSTONE_DEMO_START,default=27"`
	// Exclusive upper bound of the scan. ENV: HAILSTONE_LIMIT
	Limit uint64 `env:"HAILSTONE_LIMIT,default=1000000"`
	// ENV: HAILSTONE_INITIAL_CAPACITY
	InitialCapacity int `env:"HAILSTONE_INITIAL_CAPACITY,default=16"`
	// debug, info, error or a positive verbosity. ENV: HAILSTONE_LOG_LEVEL
	LogLevel string `env:"HAILSTONE_LOG_LEVEL,default=info"`
	// Seeds the scan digest; empty means the all-zero key. ENV: HAILSTONE_DIGEST_KEY
	DigestKey string `env:"HAILSTONE_DIGEST_KEY"`
}

func Default() Config {
	return Config{
		DemoStart:       DefaultDemoStart,
		Limit:           DefaultLimit,
		InitialCapacity: DefaultInitialCapacity,
		LogLevel:        DefaultLogLevel,
	}
}

// FromEnv decodes Config from the environment, falling back to the tag
// defaults for unset variables. Values that fail to parse are errors.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// AddFlags registers overrides for the scan parameters. Current field values
// become the flag defaults, so call it after FromEnv.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.Uint64Var(&c.DemoStart, "demo-start", c.DemoStart, "Start value of the reported example sequence")
	fs.Uint64Var(&c.Limit, "limit", c.Limit, "Exclusive upper bound of the longest-sequence scan")
	fs.IntVar(&c.InitialCapacity, "initial-capacity", c.InitialCapacity, "Initial capacity of the sequence buffer")
	fs.StringVar(&c.DigestKey, "digest-key", c.DigestKey, "Key mixed into the scan digest")
}

// DigestKeyBytes derives the 32-byte digest key. An empty key maps to zeros.
func (c Config) DigestKeyBytes() [32]byte {
	if c.DigestKey == "" {
		return [32]byte{}
	}
	return sha256.Sum256([]byte(c.DigestKey))
}

func (c Config) Validate() error {
	var errs []error
	if c.DemoStart < 1 {
		errs = append(errs, ErrInvalidDemoStart)
	}
	if c.Limit < 1 {
		errs = append(errs, ErrInvalidLimit)
	}
	if c.InitialCapacity < 1 {
		errs = append(errs, ErrInvalidInitialCapacity)
	}
	return errors.Join(errs...)
}
