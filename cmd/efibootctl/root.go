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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "efibootctl",
		Short: "Inspect and mutate UEFI boot, driver, and sysprep entries",
	}
	cmd.PersistentFlags().String("config-dir", "", "Set config dir")
	cmd.PersistentFlags().Bool("quiet", false, "Do not print result details")
	_ = viper.BindPFlag("config-dir", cmd.PersistentFlags().Lookup("config-dir"))
	_ = viper.BindPFlag("quiet", cmd.PersistentFlags().Lookup("quiet"))

	cmd.AddCommand(newShowCmd(), newModCmd(), newAddCmd(), newDelCmd())
	return cmd
}

// Execute runs the root command and returns the process exit code the
// caller should use.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if be, ok := err.(*bkerror.Error); ok {
			return be.ExitCode()
		}
		return 1
	}
	return 0
}
