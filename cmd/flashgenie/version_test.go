package main

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func pinBuild(t *testing.T, v, c, d string) {
	t.Helper()
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = v, c, d
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	pinBuild(t, "1.2.3", "abcdef1", "2026-10-19")

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)

	require.Contains(t, stdout, "Flashcard Genie 1.2.3")
	require.Contains(t, stdout, "commit: abcdef1")
	require.Contains(t, stdout, "built: 2026-10-19")
	require.Contains(t, stdout, "go: "+runtime.Version())
}

func TestVersionShortFlag(t *testing.T) {
	pinBuild(t, "1.2.3", "abcdef1", "2026-10-19")

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"version", "--short"})

	require.NoError(t, root.Execute())
	require.Equal(t, "1.2.3\n", buf.String())
}

func TestCurrentBuildFallsBackToEmbeddedMetadata(t *testing.T) {
	pinBuild(t, "dev", "none", "unknown")

	info := currentBuild(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "f00dbabe"},
				{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			},
		}, true
	})
	require.Equal(t, buildInfo{Version: "v0.4.0", Commit: "f00dbabe", Date: "2026-10-01T12:00:00Z", Go: runtime.Version()}, info)

	info = currentBuild(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	})
	require.Equal(t, "dev", info.Version)

	pinBuild(t, "1.2.3", "abcdef1", "2026-10-19")
	info = currentBuild(func() (*debug.BuildInfo, bool) { return nil, false })
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "abcdef1", info.Commit)
}
