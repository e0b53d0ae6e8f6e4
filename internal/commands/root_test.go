package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/Pam-La/hailstone/internal/config"
	"github.com/Pam-La/hailstone/internal/hailstone"
	"github.com/Pam-La/hailstone/internal/logger"
	"github.com/Pam-La/hailstone/internal/scan"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HAILSTONE_DEMO_START", "27")
	t.Setenv("HAILSTONE_LIMIT", "1000")
	t.Setenv("HAILSTONE_INITIAL_CAPACITY", "16")
	t.Setenv("HAILSTONE_LOG_LEVEL", "info")
	t.Setenv("HAILSTONE_DIGEST_KEY", "")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	log := logger.NewWithWriter("hailstone", &logs)

	root, err := NewRootCmd(log, &out)
	require.NoError(t, err)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)

	err = root.Execute()
	log.Flush()
	return out.String(), logs.String(), err
}

func TestRootPrintsReport(t *testing.T) {
	setTestEnv(t)

	out, logs, err := execute(t)
	require.NoError(t, err)
	require.Empty(t, logs)
	require.Equal(t, `First four values in sequence for 27:
27
82
41
124
Last four values in sequence for 27:
8
4
2
1
Length of sequence for 27:
112
Number with longest sequence:
871
Length of longest sequence:
179
`, out)
}

func TestRootFlagsOverrideEnv(t *testing.T) {
	setTestEnv(t)

	out, _, err := execute(t, "--demo-start=9", "--limit=10")
	require.NoError(t, err)
	require.Contains(t, out, "Length of sequence for 9:\n20\n")
	require.Contains(t, out, "Number with longest sequence:\n9\n")
}

func TestRootDebugLogsGoToLogger(t *testing.T) {
	setTestEnv(t)

	out, logs, err := execute(t, "-v=debug", "--limit=100")
	require.NoError(t, err)
	require.Contains(t, logs, "scan finished")
	require.NotContains(t, out, "scan finished")
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	setTestEnv(t)

	_, _, err := execute(t, "--limit=0")
	require.Error(t, err)

	_, _, err = execute(t, "unexpected")
	require.Error(t, err)
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	setTestEnv(t)
	t.Setenv("HAILSTONE_LOG_LEVEL", "chatty")

	_, err := NewRootCmd(logger.NewWithWriter("hailstone", &bytes.Buffer{}), &bytes.Buffer{})
	require.Error(t, err)
}

func TestRootReportsTrialFailure(t *testing.T) {
	setTestEnv(t)

	// 2^63+1 overflows on its first odd step
	_, logs, err := execute(t, "--demo-start=9223372036854775809", "--limit=1")
	require.ErrorIs(t, err, hailstone.ErrOverflow)
	require.Contains(t, logs, "scan failed")
}

func TestDriverConfigCarriesDigestKey(t *testing.T) {
	cfg := config.Default()
	cfg.Limit = 100

	unkeyed := driverConfig(cfg)
	require.Equal(t, [32]byte{}, unkeyed.DigestKey)

	cfg.DigestKey = "nightly"
	keyed := driverConfig(cfg)
	require.Equal(t, cfg.DigestKeyBytes(), keyed.DigestKey)
	require.Equal(t, cfg.Limit, keyed.Limit)

	plain := scan.NewDriver(unkeyed, logr.Discard())
	defer plain.Close()
	withKey := scan.NewDriver(keyed, logr.Discard())
	defer withKey.Close()

	first, err := plain.Run()
	require.NoError(t, err)
	second, err := withKey.Run()
	require.NoError(t, err)
	require.Equal(t, first.Best, second.Best)
	require.NotEqual(t, first.Digest, second.Digest)
}

func TestRootRejectsGarbageEnv(t *testing.T) {
	setTestEnv(t)
	t.Setenv("HAILSTONE_LIMIT", "-5")

	_, err := NewRootCmd(logger.NewWithWriter("hailstone", &bytes.Buffer{}), &bytes.Buffer{})
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setTestEnv(t)

	out, _, err := execute(t, "version")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, defaultVersion, info.Version)
	require.NotEmpty(t, info.GoVersion)
}
