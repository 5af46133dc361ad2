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

package bkerror

// CLI exit codes, one per error Kind. Front-ends (cmd/efibootctl,
// cmd/devpath) use these; the core never exits a process itself.
const (
	// ExitInvalid is returned for malformed input or bad arguments.
	ExitInvalid = 10
	// ExitImplausible is returned when the plausibility heuristic
	// rejects a parsed device path.
	ExitImplausible = 11
	// ExitNotFound is returned when a requested variable is absent.
	ExitNotFound = 12
	// ExitNoSpace is returned when no AUTO index is free.
	ExitNoSpace = 13
	// ExitPermissionDenied is returned for privilege or firmware
	// write failures.
	ExitPermissionDenied = 14
	// ExitUnsupported is returned when the backend cannot perform
	// the requested operation.
	ExitUnsupported = 15
	// ExitIo is returned for other backend transport failures.
	ExitIo = 16
	// ExitOutOfMemory is returned when an allocation fails.
	ExitOutOfMemory = 17
	// ExitUnknown is the code for an error not carrying a Kind. The
	// front-ends in this module do not use it: they exit with status 1
	// for such errors.
	ExitUnknown = 255
)

var exitCodes = map[Kind]int{
	Invalid:          ExitInvalid,
	Implausible:      ExitImplausible,
	NotFound:         ExitNotFound,
	NoSpace:          ExitNoSpace,
	PermissionDenied: ExitPermissionDenied,
	Unsupported:      ExitUnsupported,
	Io:               ExitIo,
	OutOfMemory:      ExitOutOfMemory,
}
