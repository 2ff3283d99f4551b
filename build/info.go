// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package build

type Info struct{}

func (i *Info) Version() string           { return Version }
func (i *Info) SHA() string               { return SHA }
func (i *Info) BuildDate() string         { return BuildDate }
func (i *Info) License() string           { return License }
func (i *Info) DefaultConfigFile() string { return DefaultConfigFile }
