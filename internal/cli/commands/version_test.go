package commands

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabview/internal/cli/output"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release build",
			info:    BuildInfo{Version: "1.2.3", GitCommit: "abc1234", BuildDate: "2024-05-01"},
			wantOut: []string{"tabview v1.2.3", "commit:  abc1234", "built:   2024-05-01"},
		},
		{
			name:    "dev build",
			info:    BuildInfo{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"},
			wantOut: []string{"tabview vdev", "commit:  unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())

			out := buf.String()
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			assert.Contains(t, out, "go:      "+runtime.Version())
			assert.Contains(t, out, "duckdb:  v")
		})
	}
}

func TestRunVersion_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeJSON)
	info := BuildInfo{Version: "1.0.0", GitCommit: "abc", BuildDate: "today", GoVersion: "go1.24.0", DuckDB: "v1.1.3"}

	require.NoError(t, runVersion(r, info))

	var got BuildInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, info, got)
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.True(t, strings.Contains(cmd.Long, "DuckDB"))
}
