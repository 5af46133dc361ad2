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
)

func newDelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "del",
		Short: "Delete an entry selected by --name or --position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			typName, _ := cmd.Flags().GetString("type")
			typ, err := parseType(typName)
			if err != nil {
				return err
			}
			mgr, _, err := newManager(cmd)
			if err != nil {
				return err
			}
			entries, err := mgr.LoadAll(typ)
			if err != nil {
				return err
			}

			if all, _ := cmd.Flags().GetBool("all"); all {
				if err := mgr.DeleteAll(entries); err != nil {
					return err
				}
				if err := mgr.SaveAll(typ, nil); err != nil {
					return err
				}
				if !viper.GetBool("quiet") {
					fmt.Printf("deleted %d entries\n", len(entries))
				}
				return nil
			}

			idx, err := findEntry(cmd, entries)
			if err != nil {
				return err
			}
			name := entries[idx].Name()

			if _, err := mgr.Delete(typ, entries, idx); err != nil {
				return err
			}
			if !viper.GetBool("quiet") {
				fmt.Printf("deleted %s\n", name)
			}
			return nil
		},
	}
	addTypeFlag(cmd)
	cmd.Flags().Bool("all", false, "Delete every entry of the selected type")
	cmd.Flags().String("name", "", "Select the entry by variable name, e.g. Boot0001")
	cmd.Flags().Int("position", -1, "Select the entry by position in the ordering list")
	return cmd
}
