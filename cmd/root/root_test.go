package root_test

import (
	"testing"

	"omfin/ledger-sync/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "ledger-sync", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Sync bank transactions")
	assert.Contains(t, root.Cmd.Long, "merchant identity")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommandGlobals(t *testing.T) {
	assert.NotNil(t, root.Log)
	assert.NotNil(t, root.Cmd)
}

func TestNewContainerRequiresLoadedConfig(t *testing.T) {
	// Before PersistentPreRunE has run there is no configuration yet.
	if root.Config() == nil {
		_, err := root.NewContainer()
		assert.Error(t, err)
	}
}
