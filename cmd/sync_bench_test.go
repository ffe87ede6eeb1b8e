package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func generateFeatureFile(name string, scenarioCount int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Feature: %s\n", name)
	buf.WriteString("  Background:\n")
	buf.WriteString("    Given the system is running\n\n")
	for i := 1; i <= scenarioCount; i++ {
		fmt.Fprintf(&buf, "  @smoke @area%d\n", i%5)
		fmt.Fprintf(&buf, "  Scenario: %s scenario %d\n", name, i)
		fmt.Fprintf(&buf, "    Given precondition %d\n", i)
		fmt.Fprintf(&buf, "    When action %d is taken\n", i)
		fmt.Fprintf(&buf, "    Then result %d is observed\n\n", i)
	}
	return buf.String()
}

func setupBenchProject(b *testing.B, fileCount, scenariosPerFile int) {
	b.Helper()
	dir := b.TempDir()
	orig, err := os.Getwd()
	require.NoError(b, err)
	require.NoError(b, os.Chdir(dir))
	b.Cleanup(func() { os.Chdir(orig) })

	var buf bytes.Buffer
	require.NoError(b, RunInit(&buf))

	for i := 0; i < fileCount; i++ {
		name := fmt.Sprintf("feature_%d", i)
		content := generateFeatureFile(name, scenariosPerFile)
		require.NoError(b, os.WriteFile(filepath.Join("features", name+".feature"), []byte(content), 0o644))
	}
}

func BenchmarkSync_FirstRun(b *testing.B) {
	setupBenchProject(b, 20, 10)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		os.Remove(filepath.Join("features", "gherk.db"))
		b.StartTimer()

		var buf bytes.Buffer
		require.NoError(b, RunSync(&buf))
	}
}

func BenchmarkSync_NoChanges(b *testing.B) {
	setupBenchProject(b, 20, 10)

	var buf bytes.Buffer
	require.NoError(b, RunSync(&buf))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunSync(&buf))
	}
}

func BenchmarkList_Filtered(b *testing.B) {
	setupBenchProject(b, 20, 10)

	var buf bytes.Buffer
	require.NoError(b, RunSync(&buf))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunList(&buf, "@smoke and not @area0"))
	}
}
