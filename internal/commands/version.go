package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Pam-La/hailstone/internal/logger"
)

const (
	defaultVersion = "dev"
)

// Set through -ldflags at build time.
var (
	Version        = defaultVersion
	CommitHash     = ""
	BuildTimestamp = ""
)

type VersionInfo struct {
	Version        string `json:"version"`
	CommitHash     string `json:"commitHash,omitempty"`
	BuildTimestamp string `json:"buildTimestamp,omitempty"`
	GoVersion      string `json:"goVersion"`
}

func NewVersionCommand(log *logger.Logger, out io.Writer) (*cobra.Command, error) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Prints version information",
		Long:  `Prints version information.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			versionStr, err := versionString()
			if err != nil {
				log.Error(err, "Could not serialize version information")
				return err
			}
			_, err = fmt.Fprintln(out, versionStr)
			return err
		},
	}

	return versionCmd, nil
}

func versionString() (string, error) {
	info := VersionInfo{
		Version:        Version,
		CommitHash:     CommitHash,
		BuildTimestamp: BuildTimestamp,
		GoVersion:      runtime.Version(),
	}
	b, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
