package main

import (
	"os"

	auditcmd "omfin/ledger-sync/cmd/audit"
	"omfin/ledger-sync/cmd/root"
	synccmd "omfin/ledger-sync/cmd/sync"
	"omfin/ledger-sync/internal/config"
)

func init() {
	// Environment first so the root command sees LEDGERSYNC_* overrides
	// from a .env file during configuration loading.
	config.LoadEnv()

	root.Cmd.AddCommand(synccmd.Cmd)
	root.Cmd.AddCommand(auditcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
