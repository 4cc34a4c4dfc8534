package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/imageio"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := root.Execute()
	return out.String(), err
}

func TestOpsListsRegistryInOrder(t *testing.T) {
	out, err := execute(t, "ops")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, algorithms.NumOperations+1)
	assert.Contains(t, lines[1], "gaussian_blur")
	assert.Contains(t, lines[len(lines)-1], "defringe")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "gaussian", flagName(algorithms.Lookup(algorithms.GaussianBlur)))
	assert.Equal(t, "box", flagName(algorithms.Lookup(algorithms.BoxBlur)))
	assert.Equal(t, "temperature", flagName(algorithms.Lookup(algorithms.Temperature)))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")
	preview := filepath.Join(dir, "preview.png")

	logger, _ := test.NewNullLogger()
	loader := imageio.NewLoader(logger)
	img, err := core.NewUniform(32, 16, 128, 128, 128)
	require.NoError(t, err)
	require.NoError(t, loader.Save(img, in))

	out, err := execute(t, "render", "--in", in, "--out", outPath,
		"--preview", preview, "--preview-size", "8",
		"--gaussian", "--intensity", "2", "--temperature", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "32x16")

	result, err := loader.Load(outPath)
	require.NoError(t, err)
	b, g, r := result.BGR(10, 8)
	assert.Equal(t, []uint8{78, 128, 178}, []uint8{b, g, r})

	thumb, err := loader.Load(preview)
	require.NoError(t, err)
	assert.Equal(t, 8, thumb.Width())
	assert.Equal(t, 4, thumb.Height())
}

func TestRenderRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")

	logger, _ := test.NewNullLogger()
	img, err := core.NewUniform(4, 4, 1, 2, 3)
	require.NoError(t, err)
	require.NoError(t, imageio.NewLoader(logger).Save(img, in))

	_, err = execute(t, "render", "--in", in, "--out", filepath.Join(dir, "out.png"), "--contrast", "150")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = execute(t, "render", "--in", in, "--out", filepath.Join(dir, "out.png"), "--intensity", "0", "--box")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = execute(t, "render", "--out", filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}
