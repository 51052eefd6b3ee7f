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
	"github.com/erigontech/shardstate/core/kv"
	"github.com/erigontech/shardstate/core/specials"
	"github.com/erigontech/shardstate/core/state"
	"github.com/erigontech/shardstate/core/vm/testvm"
)

// replayCommand applies the same block against two independent overlays
// of the same pre-state and shares one TransitionMemo across both runs,
// demonstrating the determinism check of spec section 9: a divergent
// second root panics instead of silently persisting.
func replayCommand() *cobra.Command {
	var blockPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "apply a block twice against the same pre-state and verify the roots agree",
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

			preRoot := readRoot(dd.store)
			cfg := chain.DefaultConfig()
			reg := specials.DefaultRegistry()
			machine := testvm.New()
			txMemo := chain.NewTransitionMemo()

			var roots [2]string
			for i := 0; i < 2; i++ {
				overlay := kv.NewOverlayStore(dd.store)
				s := state.New(preRoot, overlay)
				chain.ApplyBlock(s, cfg, reg, machine, txMemo, chain.NewPureCallMemo(), chain.Hooks{}, block)
				roots[i] = formatRoot(s.Root())
			}

			logger.Info("replay complete", zap.String("first", roots[0]), zap.String("second", roots[1]))
			cmd.Println(roots[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&blockPath, "block", "", "path to a JSON block file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable development-mode (human-readable) logging")
	cmd.MarkFlagRequired("block")
	return cmd
}
