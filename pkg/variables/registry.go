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

package variables

import "github.com/elemental-efi/efibootkit/internal/log"

// NewStore picks the Store implementation appropriate for the build's
// target platform: LinuxStore under linux, WindowsStore under windows,
// StubStore everywhere else. The choice is made at compile time by
// newPlatformStore (see registry_linux.go, registry_windows.go,
// registry_other.go) rather than by inspecting runtime.GOOS, so a
// binary built for one platform never links the others' syscalls.
// logger may be nil, in which case the backend logs to a discarded
// logger.
func NewStore(logger log.Logger) Store {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return newPlatformStore(logger)
}
