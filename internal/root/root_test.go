package root

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_SitesCommand(t *testing.T) {
	cmd, err := Root(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	cmd.Writer = &out

	require.NoError(t, cmd.Run(context.Background(), []string{"westend-watcher", "sites"}))

	for _, id := range []string{"donmar", "national", "bridge", "hampstead", "marylebone",
		"soho_dean", "soho_walthamstow", "rsc", "royal_court", "drury_lane"} {
		assert.Contains(t, out.String(), id)
	}
	assert.Contains(t, out.String(), "browser")
}

func TestUnit_RunCommandRejectsUnknownSite(t *testing.T) {
	cmd, err := Root(context.Background(), WithFetchers(nil, nil))
	require.NoError(t, err)

	var out bytes.Buffer
	cmd.Writer = &out

	err = cmd.Run(context.Background(), []string{
		"westend-watcher", "run", "--theatre", "old-vic", "--no-email",
		"--snapshot-dir", t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site")
}
