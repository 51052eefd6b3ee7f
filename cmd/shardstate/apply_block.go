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

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erigontech/shardstate/core/chain"
	"github.com/erigontech/shardstate/core/specials"
	"github.com/erigontech/shardstate/core/state"
	"github.com/erigontech/shardstate/core/vm/testvm"
)

func applyBlockCommand() *cobra.Command {
	var blockPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "apply-block",
		Short: "apply a single JSON-described block to the datadir's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			defer logger.Sync()

			dd, err := openDatadir(datadirFlag)
			if err != nil {
				return err
			}
			defer dd.Close()

			block, err := loadBlockFile(blockPath, maxCodeSizeFlag.Bytes())
			if err != nil {
				return err
			}

			s := state.New(readRoot(dd.store), dd.store)
			cfg := chain.DefaultConfig()
			reg := specials.DefaultRegistry()
			machine := testvm.New()
			txMemo := chain.NewTransitionMemo()
			callMemo := chain.NewPureCallMemo()

			logger.Info("applying block", zap.Uint64("number", block.Number()))
			chain.ApplyBlock(s, cfg, reg, machine, txMemo, callMemo, chain.Hooks{}, block)

			root := s.Root()
			writeRoot(dd.store, root)
			logger.Info("block applied", zap.String("root", formatRoot(root)))
			cmd.Println(formatRoot(root))
			return nil
		},
	}
	cmd.Flags().StringVar(&blockPath, "block", "", "path to a JSON block file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable development-mode (human-readable) logging")
	cmd.MarkFlagRequired("block")
	return cmd
}
