package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestGetInfoPrefersLinkerVersion(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "1.4.2"
	assert.Equal(t, "1.4.2", GetInfo().Version)
}

func TestInfoFormatting(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		GitCommit: "abc123",
		BuildTime: "2024-01-01",
		GoVersion: "go1.23.0",
	}

	assert.Equal(t, "Timecode 1.0.0 (commit: abc123, built: 2024-01-01, go: go1.23.0)", info.String())
	assert.Equal(t, "Timecode 1.0.0", info.Short())
}
