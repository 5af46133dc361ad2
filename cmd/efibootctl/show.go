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
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List entries of the selected type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			typName, _ := cmd.Flags().GetString("type")
			typ, err := parseType(typName)
			if err != nil {
				return err
			}
			mgr, cfg, err := newManager(cmd)
			if err != nil {
				return err
			}
			entries, err := mgr.LoadAll(typ)
			if err != nil {
				return err
			}
			for i, e := range entries {
				printEntry(cfg, e, i)
			}
			return nil
		},
	}
	addTypeFlag(cmd)
	return cmd
}
