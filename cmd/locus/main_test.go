package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus"
	"github.com/aretw0/locus/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "locus version "+locus.Version+"\n", buf.String())
}

func TestLearnOptions(t *testing.T) {
	cmd := learnCmd
	require.NoError(t, cmd.ParseFlags([]string{"--coverage", "lenient", "--keep", "--halt-key", "stop"}))
	require.NoError(t, rootCmd.PersistentFlags().Set("domain", "d.yaml"))
	t.Cleanup(func() { rootCmd.PersistentFlags().Set("domain", "") })

	opts := learnOptions(cmd)
	assert.Equal(t, "d.yaml", opts.DomainPath)
	assert.Equal(t, "lenient", opts.Coverage)
	assert.True(t, opts.Keep)
	assert.Equal(t, "stop", opts.HaltKey)
}

func TestInterrupted(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Cancel()

	err := errors.New("boom")
	assert.Equal(t, err, interrupted(sc, err))
	assert.NoError(t, interrupted(sc, nil))
}
