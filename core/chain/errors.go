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

package chain

import "github.com/pkg/errors"

// This package surfaces the two remaining tiers of spec section 9's
// three-tier error model. The first tier, structural rejection, lives
// in core/types (Block/Transaction constructors return errors built
// with github.com/pkg/errors). The other two live here:
//
//   - execution soft-failure is not a Go error at all — it is the
//     vm.StatusSoftFail/StatusRevert tag ApplyMessage returns, which
//     ApplyTransaction records as a TxStatus in the transaction's log
//     entry and Hooks outcome, because a failed message is an
//     expected, handled outcome, not an exceptional one.
//   - fatalInvariant panics on a runtime invariant that construction-time
//     validation should already have ruled out. These are deliberately
//     unrecovered: a fatal invariant means state has already diverged
//     from what SPEC_FULL.md guarantees, and attempting to continue
//     would just corrupt the trie further.

// fatalInvariant panics with a wrapped, formatted message.
func fatalInvariant(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}
