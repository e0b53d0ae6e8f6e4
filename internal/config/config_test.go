package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	unsetEnv(t, "HAILSTONE_DEMO_START", "HAILSTONE_LIMIT", "HAILSTONE_INITIAL_CAPACITY", "HAILSTONE_LOG_LEVEL", "HAILSTONE_DIGEST_KEY")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HAILSTONE_DEMO_START", "97")
	t.Setenv("HAILSTONE_LIMIT", "1000")
	t.Setenv("HAILSTONE_INITIAL_CAPACITY", "4")
	t.Setenv("HAILSTONE_LOG_LEVEL", "debug")
	t.Setenv("HAILSTONE_DIGEST_KEY", "run-a")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, Config{
		DemoStart:       97,
		Limit:           1000,
		InitialCapacity: 4,
		LogLevel:        "debug",
		DigestKey:       "run-a",
	}, cfg)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"HAILSTONE_LIMIT", "lots"},
		{"HAILSTONE_LIMIT", "-5"},
		{"HAILSTONE_DEMO_START", "-5"},
		{"HAILSTONE_DEMO_START", "2.5"},
		{"HAILSTONE_INITIAL_CAPACITY", "many"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			unsetEnv(t, "HAILSTONE_DEMO_START", "HAILSTONE_LIMIT", "HAILSTONE_INITIAL_CAPACITY")
			t.Setenv(tc.key, tc.value)

			cfg, err := FromEnv()
			require.Error(t, err)
			require.Equal(t, Config{}, cfg)
		})
	}
}

func TestDigestKeyBytes(t *testing.T) {
	cfg := Default()
	require.Equal(t, [32]byte{}, cfg.DigestKeyBytes())

	cfg.DigestKey = "run-a"
	a := cfg.DigestKeyBytes()
	require.NotEqual(t, [32]byte{}, a)
	require.Equal(t, a, cfg.DigestKeyBytes())

	cfg.DigestKey = "run-b"
	require.NotEqual(t, a, cfg.DigestKeyBytes())
}

func TestFlagsOverrideEnv(t *testing.T) {
	unsetEnv(t, "HAILSTONE_DEMO_START", "HAILSTONE_INITIAL_CAPACITY", "HAILSTONE_DIGEST_KEY")
	t.Setenv("HAILSTONE_LIMIT", "500")

	cfg, err := FromEnv()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--demo-start=7", "--initial-capacity=2", "--digest-key=k"}))

	require.Equal(t, uint64(7), cfg.DemoStart)
	require.Equal(t, uint64(500), cfg.Limit)
	require.Equal(t, 2, cfg.InitialCapacity)
	require.Equal(t, "k", cfg.DigestKey)
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidDemoStart)
	require.ErrorIs(t, err, ErrInvalidLimit)
	require.ErrorIs(t, err, ErrInvalidInitialCapacity)

	cfg = Default()
	cfg.Limit = 1
	require.NoError(t, cfg.Validate())
}

// unsetEnv removes the variables for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
