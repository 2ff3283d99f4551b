// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"runtime"
	rd "runtime/debug"
	"sort"
	"sync"

	"github.com/mattfoxxx/salt-checkmk/build"
	iu "github.com/mattfoxxx/salt-checkmk/internal/util"
)

type buildinfoCommand struct {
	dependencies bool

	command
}

func (b *buildinfoCommand) Setup() error {
	b.cmd = cli.app.Command("buildinfo", "Build Settings and Configuration")
	b.cmd.Flag("dependencies", "Show dependencies used to build the binary").Short('D').UnNegatableBoolVar(&b.dependencies)

	return nil
}

func (b *buildinfoCommand) Configure() error {
	return commonConfigure()
}

func (b *buildinfoCommand) Run(wg *sync.WaitGroup) error {
	defer wg.Done()

	bi := &build.Info{}

	source := cfg.ConfigFile
	if source == "" {
		source = "defaults"
	}

	fmt.Println("CheckMK agent plugin build settings:")
	fmt.Println()
	iu.DumpMapStrings(os.Stdout, map[string]string{
		"Version":    bi.Version(),
		"Git SHA":    bi.SHA(),
		"Build Date": bi.BuildDate(),
		"License":    bi.License(),
		"Go Version": runtime.Version(),
	}, 2)

	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println()
	iu.DumpMapStrings(os.Stdout, map[string]string{
		"Config File": source,
		"Facts File":  cfg.FactsFile,
		"Role":        cfg.Role,
		"Updater":     cfg.UpdaterPath,
		"Agent":       cfg.AgentPath,
	}, 2)

	if b.dependencies {
		b.printGoMods()
	}

	return nil
}

func (b *buildinfoCommand) printGoMods() {
	nfo, ok := rd.ReadBuildInfo()
	if !ok {
		fmt.Println("Could not read dependency information")
		return
	}

	fmt.Println()
	fmt.Println("Compile time module dependencies:")
	fmt.Println()

	if len(nfo.Deps) == 0 {
		fmt.Println("No module dependencies found")
		return
	}

	mods := []string{}
	versions := map[string]string{}
	for _, mod := range nfo.Deps {
		mods = append(mods, mod.Path)
		versions[mod.Path] = mod.Version
	}

	longest := iu.LongestString(mods, 50)
	sort.Strings(mods)

	format := fmt.Sprintf("  %%%ds %%s\n", longest)
	for _, mod := range mods {
		fmt.Printf(format, mod, versions[mod])
	}
}

func init() {
	cli.commands = append(cli.commands, &buildinfoCommand{})
}
