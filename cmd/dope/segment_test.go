//go:build unix

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/born-ml/dope/internal/memory"
)

func TestCreateThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")

	var out bytes.Buffer
	require.NoError(t, run([]string{"create", "-file", path, "-shape", "2,3", "-iota"}, &out))
	assert.Equal(t, "wrote 48 bytes to "+path+"\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"inspect", "-file", path, "-shape", "2,3"}, &out))
	s := out.String()
	for _, want := range []string{" 0 ", " 1 ", " 2 ", " 3 ", " 4 ", " 5 "} {
		assert.Contains(t, s, want)
	}

	// Same bytes read column-major: the transposed plane.
	out.Reset()
	require.NoError(t, run([]string{"inspect", "-file", path, "-layout", "0:3:1,0:2:3"}, &out))
	assert.Contains(t, out.String(), " 5 ")
}

func TestCreateFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.bin")

	var out bytes.Buffer
	require.NoError(t, run([]string{"create", "-file", path, "-shape", "4", "-dtype", "int16", "-fill", "7"}, &out))
	assert.Equal(t, "wrote 8 bytes to "+path+"\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"inspect", "-file", path, "-shape", "4", "-dtype", "int16"}, &out))
	assert.Contains(t, out.String(), " 7 ")
}

func TestInspectRefusesLayoutPastFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.bin")

	var out bytes.Buffer
	require.NoError(t, run([]string{"create", "-file", path, "-shape", "2"}, &out))

	out.Reset()
	err := run([]string{"inspect", "-file", path, "-shape", "3"}, &out)
	assert.Error(t, err)
}

func TestInspectCheckSkipsElementsPastFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prevBuild, prevMemory := buildLogger, memory.Logger()
	buildLogger = func(...zap.Option) (*zap.Logger, error) { return zap.New(core), nil }
	defer func() {
		buildLogger = prevBuild
		memory.SetLogger(prevMemory)
	}()

	path := filepath.Join(t.TempDir(), "d.bin")
	var out bytes.Buffer
	require.NoError(t, run([]string{"create", "-file", path, "-shape", "2", "-iota"}, &out))

	// Far more columns than the 16-byte file holds; none past it may be read.
	out.Reset()
	require.NoError(t, run([]string{"inspect", "-check", "-file", path, "-shape", "2,1000"}, &out))
	assert.Contains(t, out.String(), " 1 ")
	assert.Contains(t, out.String(), " - ")

	entries := logs.FilterMessage("range violation").All()
	require.Len(t, entries, 2*1000-2)
	first := entries[0].ContextMap()
	assert.Equal(t, "Memory", first["label"])
	assert.Equal(t, int64(16), first["value"])
	assert.Equal(t, int64(9), first["high"])
}

func TestInspectMissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"inspect", "-file", filepath.Join(t.TempDir(), "none"), "-shape", "2"}, &out))
	assert.Error(t, run([]string{"inspect", "-shape", "2"}, &out))
}
