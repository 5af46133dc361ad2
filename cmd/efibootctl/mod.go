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
	"encoding/base64"

	"github.com/spf13/cobra"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/loadoption"
)

func newModCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mod",
		Short: "Modify an existing entry selected by --name or --position",
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

			idx, err := findEntry(cmd, entries)
			if err != nil {
				return err
			}
			e := entries[idx]

			if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				e.SetDescription(description)
			}
			if cmd.Flags().Changed("attributes") {
				attrs, _ := cmd.Flags().GetUint32("attributes")
				e.SetAttributes(loadoption.Attributes(attrs))
			}
			if paths, _ := cmd.Flags().GetStringArray("path"); len(paths) > 0 {
				if err := e.SetPathsText(paths, false); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("data") {
				dataB64, _ := cmd.Flags().GetString("data")
				data, err := base64.StdEncoding.DecodeString(dataB64)
				if err != nil {
					return bkerror.Wrap(bkerror.Invalid, err, "decoding --data")
				}
				e.SetData(data)
			}

			if err := mgr.SaveAll(typ, entries); err != nil {
				return err
			}
			printEntry(cfg, e, idx)
			return nil
		},
	}
	addTypeFlag(cmd)
	cmd.Flags().String("name", "", "Select the entry by variable name, e.g. Boot0001")
	cmd.Flags().Int("position", -1, "Select the entry by position in the ordering list")
	cmd.Flags().String("description", "", "New entry description")
	cmd.Flags().Uint32("attributes", 0, "New entry attributes")
	cmd.Flags().StringArray("path", nil, "Replacement device path in textual form (repeatable)")
	cmd.Flags().String("data", "", "New base64-encoded optional data")
	return cmd
}
