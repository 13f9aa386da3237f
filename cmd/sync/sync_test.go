package sync_test

import (
	"testing"

	synccmd "omfin/ledger-sync/cmd/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCommandMetadata(t *testing.T) {
	assert.Equal(t, "sync", synccmd.Cmd.Use)
	assert.Contains(t, synccmd.Cmd.Short, "ingest")
	assert.NotNil(t, synccmd.Cmd.RunE)
}

func TestSyncCommandFlags(t *testing.T) {
	forceFlag := synccmd.Cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)

	userFlag := synccmd.Cmd.Flags().Lookup("user")
	require.NotNil(t, userFlag)
	assert.Equal(t, "u", userFlag.Shorthand)
	assert.Equal(t, "", userFlag.DefValue)
}
