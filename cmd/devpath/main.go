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

// Command devpath round-trips a single UEFI device path between its
// binary wire form on stdin/stdout and its textual form, entirely as a
// shell over pkg/devicepath.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/devicepath"
)

func main() {
	os.Exit(run())
}

func run() int {
	displayOnly := pflag.BoolP("display-only", "d", false, "Render using the display-only form")
	shortcuts := pflag.BoolP("shortcuts", "s", false, "Render using shortcut node sequences")
	text := pflag.StringP("text", "t", "", "Parse TEXT instead of reading binary from stdin")
	allowImplausible := pflag.Bool("allow-implausible", false, "Do not reject suspicious file-path segments")
	pflag.Parse()

	if *text != "" {
		chain, err := devicepath.ParseText(*text, *allowImplausible)
		if err != nil {
			return fail(err)
		}
		if _, err := os.Stdout.Write(chain.Encode()); err != nil {
			return fail(err)
		}
		return 0
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fail(bkerror.Wrap(bkerror.Io, err, "reading stdin"))
	}
	chain, err := devicepath.Decode(data)
	if err != nil {
		return fail(err)
	}
	fmt.Println(devicepath.ToText(chain, *displayOnly, *shortcuts))
	return 0
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	if be, ok := err.(*bkerror.Error); ok {
		return be.ExitCode()
	}
	return 1
}
