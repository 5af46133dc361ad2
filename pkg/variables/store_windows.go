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

import (
	"fmt"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
)

const (
	initialBufferSz = 4096
	maxBufferSz     = 1024 * 1024

	sePrivilegeEnabled    = 0x00000002
	tokenAdjustPrivileges = 0x0020
	tokenQuery            = 0x0008
)

var (
	libKernel32 = syscall.NewLazyDLL("kernel32.dll")
	libAdvapi32 = syscall.NewLazyDLL("advapi32.dll")

	procGetFirmwareEnvironmentVariableExW = libKernel32.NewProc("GetFirmwareEnvironmentVariableExW")
	procSetFirmwareEnvironmentVariableExW = libKernel32.NewProc("SetFirmwareEnvironmentVariableExW")

	procOpenProcessToken      = libAdvapi32.NewProc("OpenProcessToken")
	procLookupPrivilegeValueW = libAdvapi32.NewProc("LookupPrivilegeValueW")
	procAdjustTokenPrivileges = libAdvapi32.NewProc("AdjustTokenPrivileges")
)

type luidAndAttributes struct {
	LUID       int64
	Attributes uint32
}

type tokenPrivileges struct {
	PrivilegeCount uint32
	Privileges     [1]luidAndAttributes
}

// WindowsStore backs VariableStore with the Win32 firmware environment
// variable API (GetFirmwareEnvironmentVariableExW /
// SetFirmwareEnvironmentVariableExW), raising SE_SYSTEM_ENVIRONMENT_NAME
// on the current process token once before the first call.
type WindowsStore struct {
	log log.Logger

	mu               sync.Mutex
	privilegesRaised bool
}

// NewWindowsStore returns a WindowsStore that logs through logger.
func NewWindowsStore(logger log.Logger) *WindowsStore {
	return &WindowsStore{log: logger}
}

// ensurePrivilege acquires SE_SYSTEM_ENVIRONMENT_NAME once per store.
// The privilegesRaised flag is set only on success, so later calls are
// no-ops after a successful attempt and try again after a failed one.
func (w *WindowsStore) ensurePrivilege() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.privilegesRaised {
		return nil
	}
	if err := raiseSystemEnvironmentPrivilege(); err != nil {
		return bkerror.Wrap(bkerror.PermissionDenied, err, "raising SE_SYSTEM_ENVIRONMENT_NAME")
	}
	w.privilegesRaised = true
	return nil
}

func raiseSystemEnvironmentPrivilege() error {
	var token syscall.Handle
	proc, err := syscall.GetCurrentProcess()
	if err != nil {
		return err
	}
	r1, _, err := procOpenProcessToken.Call(
		uintptr(proc),
		uintptr(tokenAdjustPrivileges|tokenQuery),
		uintptr(unsafe.Pointer(&token)),
	)
	if r1 == 0 {
		return err
	}
	defer syscall.CloseHandle(token)

	name, err := syscall.UTF16PtrFromString("SeSystemEnvironmentPrivilege")
	if err != nil {
		return err
	}
	var priv tokenPrivileges
	r1, _, err = procLookupPrivilegeValueW.Call(
		0,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&priv.Privileges[0].LUID)),
	)
	if r1 == 0 {
		return err
	}
	priv.PrivilegeCount = 1
	priv.Privileges[0].Attributes = sePrivilegeEnabled

	r1, _, err = procAdjustTokenPrivileges.Call(
		uintptr(token),
		0,
		uintptr(unsafe.Pointer(&priv)),
		0,
		0,
		0,
	)
	if r1 == 0 {
		return err
	}
	return nil
}

func (w *WindowsStore) Read(name string) ([]byte, Attributes, error) {
	if err := w.ensurePrivilege(); err != nil {
		return nil, 0, err
	}
	wideName, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return nil, 0, bkerror.Wrap(bkerror.Invalid, err, "encoding variable name")
	}
	wideGUID, err := syscall.UTF16PtrFromString(fmt.Sprintf("{%s}", strings.ToUpper(GlobalGUID.String())))
	if err != nil {
		return nil, 0, bkerror.Wrap(bkerror.Invalid, err, "encoding variable GUID")
	}

	for bufSz := initialBufferSz; bufSz <= maxBufferSz; bufSz *= 2 {
		buf := make([]byte, bufSz)
		var attrs uint32
		r1, _, callErr := procGetFirmwareEnvironmentVariableExW.Call(
			uintptr(unsafe.Pointer(wideName)),
			uintptr(unsafe.Pointer(wideGUID)),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(bufSz),
			uintptr(unsafe.Pointer(&attrs)),
		)
		if r1 == 0 {
			if callErr == syscall.ERROR_INSUFFICIENT_BUFFER {
				continue
			}
			if callErr == syscall.ERROR_ENVVAR_NOT_FOUND {
				return nil, 0, bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
			}
			return nil, 0, bkerror.Wrap(bkerror.Io, callErr, "reading firmware variable "+name)
		}
		w.log.Debugf("read %s: %d bytes, attrs %#x", name, r1, attrs)
		return buf[:uint32(r1)], Attributes(attrs), nil
	}
	return nil, 0, bkerror.Newf(bkerror.Io, "variable %s exceeds the %d byte probe limit", name, maxBufferSz)
}

func (w *WindowsStore) Write(name string, data []byte) error {
	if err := w.ensurePrivilege(); err != nil {
		return err
	}
	wideName, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return bkerror.Wrap(bkerror.Invalid, err, "encoding variable name")
	}
	wideGUID, err := syscall.UTF16PtrFromString(fmt.Sprintf("{%s}", strings.ToUpper(GlobalGUID.String())))
	if err != nil {
		return bkerror.Wrap(bkerror.Invalid, err, "encoding variable GUID")
	}

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}
	r1, _, callErr := procSetFirmwareEnvironmentVariableExW.Call(
		uintptr(unsafe.Pointer(wideName)),
		uintptr(unsafe.Pointer(wideGUID)),
		uintptr(dataPtr),
		uintptr(len(data)),
		uintptr(DefaultAttributes),
	)
	if r1 == 0 {
		return bkerror.Wrap(bkerror.PermissionDenied, callErr, "writing firmware variable "+name)
	}
	w.log.Debugf("wrote %s: %d bytes", name, len(data))
	return nil
}

func (w *WindowsStore) Delete(name string) error {
	if !w.Exists(name) {
		return bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
	}
	return w.Write(name, nil)
}

func (w *WindowsStore) Exists(name string) bool {
	_, _, err := w.Read(name)
	return err == nil
}
