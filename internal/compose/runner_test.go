package compose

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	set := map[string]bool{}
	for _, name := range available {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", &os.PathError{Op: "lookpath", Path: name, Err: os.ErrNotExist}
	}
}

func TestNewRunnerPrefersPlugin(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = fakeLookPath("docker", "docker-compose")
	r, err := NewRunner("compose.yml", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "compose"}, r.Bin)
	assert.Equal(t, "compose.yml", r.File)
}

func TestNewRunnerStandaloneFallback(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = fakeLookPath("docker-compose")
	r, err := NewRunner("", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker-compose"}, r.Bin)
}

func TestNewRunnerNotFound(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = fakeLookPath()
	_, err := NewRunner("", "")
	assert.True(t, errors.Is(err, ErrComposeNotFound))
}

func TestNewRunnerOverride(t *testing.T) {
	r, err := NewRunner("compose.yml", "/opt/bin/podman-compose")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/bin/podman-compose"}, r.Bin)
}

func TestRunCapturesOutput(t *testing.T) {
	r := &Runner{Bin: []string{"echo", "hello"}}
	res, err := r.Run(context.Background(), "world")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello world\n", res.Stdout)
}

func TestRunNonZeroExit(t *testing.T) {
	r := &Runner{Bin: []string{"sh", "-c"}}
	res, err := r.Run(context.Background(), "exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}
