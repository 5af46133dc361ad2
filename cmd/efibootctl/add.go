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
	"github.com/elemental-efi/efibootkit/pkg/bootentry"
	"github.com/elemental-efi/efibootkit/pkg/loadoption"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			typName, _ := cmd.Flags().GetString("type")
			typ, err := parseType(typName)
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")
			attrs, _ := cmd.Flags().GetUint32("attributes")
			paths, _ := cmd.Flags().GetStringArray("path")
			dataB64, _ := cmd.Flags().GetString("data")
			position, _ := cmd.Flags().GetInt("position")

			if len(paths) == 0 {
				return bkerror.New(bkerror.Invalid, "add requires at least one --path")
			}

			e := bootentry.New(typ)
			if description != "" {
				e.SetDescription(description)
			}
			if cmd.Flags().Changed("attributes") {
				e.SetAttributes(loadoption.Attributes(attrs))
			}
			if err := e.SetPathsText(paths, false); err != nil {
				return err
			}
			if dataB64 != "" {
				data, err := base64.StdEncoding.DecodeString(dataB64)
				if err != nil {
					return bkerror.Wrap(bkerror.Invalid, err, "decoding --data")
				}
				e.SetData(data)
			}
			if cmd.Flags().Changed("position") {
				if err := e.SetIndex(position); err != nil {
					return err
				}
			}

			mgr, cfg, err := newManager(cmd)
			if err != nil {
				return err
			}
			entries, err := mgr.LoadAll(typ)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			if err := mgr.SaveAll(typ, entries); err != nil {
				return err
			}
			printEntry(cfg, e, len(entries)-1)
			return nil
		},
	}
	addTypeFlag(cmd)
	cmd.Flags().String("description", "", "Entry description")
	cmd.Flags().Uint32("attributes", 0, "Entry attributes (overrides the ACTIVE default)")
	cmd.Flags().StringArray("path", nil, "Device path in textual form (repeatable)")
	cmd.Flags().String("data", "", "Base64-encoded optional data")
	cmd.Flags().Int("position", int(bootentry.AUTO), "Requested index, or leave unset for AUTO")
	return cmd
}
