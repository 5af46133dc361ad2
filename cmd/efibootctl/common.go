/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/config"
	"github.com/elemental-efi/efibootkit/pkg/bootentry"
)

// findEntry resolves the --name or --position flag to an index into
// entries. --name takes precedence when both are given.
func findEntry(cmd *cobra.Command, entries []*bootentry.Entry) (int, error) {
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		for i, e := range entries {
			if e.Name() == name {
				return i, nil
			}
		}
		return 0, bkerror.Newf(bkerror.NotFound, "no entry named %s", name)
	}
	if position, _ := cmd.Flags().GetInt("position"); position >= 0 {
		if position >= len(entries) {
			return 0, bkerror.Newf(bkerror.Invalid, "position %d out of range", position)
		}
		return position, nil
	}
	return 0, bkerror.New(bkerror.Invalid, "specify --name or --position to select an entry")
}

func parseType(s string) (bootentry.Type, error) {
	switch s {
	case "boot":
		return bootentry.Boot, nil
	case "driver":
		return bootentry.Driver, nil
	case "sysprep":
		return bootentry.SysPrep, nil
	default:
		return 0, bkerror.Newf(bkerror.Invalid, "unknown --type %q, want boot, driver, or sysprep", s)
	}
}

func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().String("type", "boot", "Entry type: boot, driver, or sysprep")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.New(viper.GetString("config-dir"))
}

func newManager(cmd *cobra.Command) (*bootentry.Manager, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return bootentry.NewManager(cfg.Store, cfg.Logger), cfg, nil
}

func printEntry(cfg *config.Config, e *bootentry.Entry, index int) {
	if viper.GetBool("quiet") {
		return
	}
	fmt.Printf("[%d] %s attrs=%#x %q\n", index, e.Name(), uint32(e.Attributes()), e.Description())
	for i := range e.Paths() {
		text, err := e.PathText(i)
		if err != nil {
			fmt.Printf("    path[%d]: <%v>\n", i, err)
			continue
		}
		fmt.Printf("    path[%d]: %s\n", i, text)
	}
}
