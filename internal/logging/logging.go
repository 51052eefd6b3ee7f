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

// Package logging is the thin wrapper around zap this module talks to
// instead of erigon-lib/log/v3, which isn't vendored here. It exposes a
// single package-level *zap.SugaredLogger so core/chain can log without
// taking a constructor-time dependency on whoever configured it.
package logging

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// SetLogger installs l as the package-level logger. cmd/shardstate calls
// this once it builds its own zap.Logger from --verbose; until
// then, every call is a no-op.
func SetLogger(l *zap.Logger) {
	log = l.Sugar()
}

// L returns the current package-level logger.
func L() *zap.SugaredLogger {
	return log
}
