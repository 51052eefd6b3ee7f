// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Command shardstate is a standalone CLI around the sharded
// state-transition core: apply-block runs a single block against a
// datadir's state and persists the result, replay re-applies the same
// block twice to demonstrate the determinism memo.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erigontech/shardstate/core/crypto"
	"github.com/erigontech/shardstate/internal/logging"
)

var (
	datadirFlag     string
	maxCodeSizeFlag = byteSizeFlag{}
)

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		// zap itself failed to construct; fall back to a no-op logger
		// rather than crash a CLI over logging setup.
		logger = zap.NewNop()
	}
	logging.SetLogger(logger)
	return logger
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "shardstate",
		Short: "sharded blockchain state-transition core CLI",
	}
	root.PersistentFlags().StringVar(&datadirFlag, "datadir", "./datadir", "directory holding the chain's persisted state")
	root.PersistentFlags().Var(&maxCodeSizeFlag, "max-code-size", "reject deployment code larger than this (e.g. 24KB), 0 disables the check")

	root.AddCommand(applyBlockCommand())
	root.AddCommand(replayCommand())
	return root
}

func formatRoot(h crypto.Hash) string {
	return fmt.Sprintf("0x%x", h.Bytes())
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
