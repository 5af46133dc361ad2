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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/twpayne/go-vfs/v4"
	"golang.org/x/sys/unix"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
)

// efivarfsImmutable is the FS_IMMUTABLE_FL inode flag efivarfs sets on
// every variable file once it has been written, so a later open for
// write has to clear it first.
const efivarfsImmutable = 0x00000010

// LinuxStore backs VariableStore with the efivarfs pseudo-filesystem
// mounted at /sys/firmware/efi/efivars. File I/O goes through a
// vfs.FS so tests can substitute an in-memory filesystem; the
// immutable-flag dance that efivarfs requires around writes and
// deletes goes through raw ioctls, which have no vfs.FS equivalent.
type LinuxStore struct {
	fs   vfs.FS
	root string
	log  log.Logger
}

// NewLinuxStore returns a LinuxStore rooted at the real OS filesystem.
func NewLinuxStore(logger log.Logger) *LinuxStore {
	return &LinuxStore{fs: vfs.OSFS, root: "/sys/firmware/efi/efivars", log: logger}
}

// newLinuxStoreFS is the test seam: it allows pointing the store at an
// arbitrary vfs.FS and root, bypassing the real efivarfs mount.
func newLinuxStoreFS(fs vfs.FS, root string, logger log.Logger) *LinuxStore {
	return &LinuxStore{fs: fs, root: root, log: logger}
}

func (s *LinuxStore) path(name string) string {
	return filepath.Join(s.root, fmt.Sprintf("%s-%s", name, GlobalGUID))
}

func (s *LinuxStore) Read(name string) ([]byte, Attributes, error) {
	path := s.path(name)
	f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	switch {
	case os.IsNotExist(err):
		return nil, 0, bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
	case os.IsPermission(err):
		return nil, 0, bkerror.Newf(bkerror.PermissionDenied, "no permission to read %s", name)
	case err != nil:
		return nil, 0, bkerror.Wrap(bkerror.Io, err, "opening "+path)
	}
	defer f.Close()

	var attrs uint32
	if err := binary.Read(f, binary.LittleEndian, &attrs); err != nil {
		if err == io.EOF {
			return nil, 0, bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
		}
		return nil, 0, bkerror.Wrap(bkerror.Io, err, "reading attributes of "+name)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, bkerror.Wrap(bkerror.Io, err, "reading "+name)
	}
	s.log.Debugf("read %s: %d bytes, attrs %#x", name, len(data), attrs)
	return data, Attributes(attrs), nil
}

func (s *LinuxStore) Write(name string, data []byte) error {
	path := s.path(name)
	return maybeRetry(4, func() (bool, error) { return s.writeOnce(path, data) })
}

// writeOnce performs one write attempt, reporting whether the caller
// should retry because the failure looked like a transient immutable-
// flag race rather than a genuine permission denial.
func (s *LinuxStore) writeOnce(path string, data []byte) (retry bool, err error) {
	r, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	switch {
	case os.IsNotExist(err):
	case os.IsPermission(err):
		return false, bkerror.New(bkerror.PermissionDenied, "no permission to write "+path)
	case err != nil:
		return false, bkerror.Wrap(bkerror.Io, err, "opening "+path)
	default:
		defer r.Close()
		restore, err := makeVarFileMutable(r)
		if err != nil {
			if os.IsPermission(err) {
				return false, bkerror.New(bkerror.PermissionDenied, "no permission to clear immutable flag on "+path)
			}
			return false, bkerror.Wrap(bkerror.Io, err, "clearing immutable flag on "+path)
		}
		defer restore()
	}

	w, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return s.classifyAccessError(err)
	}
	defer w.Close()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(DefaultAttributes))
	buf.Write(data)
	if _, err := buf.WriteTo(w); err != nil {
		return false, bkerror.Wrap(bkerror.Io, err, "writing "+path)
	}
	s.log.Debugf("wrote %s: %d bytes", path, len(data))
	return false, nil
}

func (s *LinuxStore) Delete(name string) error {
	path := s.path(name)
	return maybeRetry(4, func() (bool, error) { return s.deleteOnce(path) })
}

// deleteOnce mirrors efivarfs's own convention: a variable is deleted by
// unlinking its file after making the inode mutable, the same path a
// zero-length write takes.
func (s *LinuxStore) deleteOnce(path string) (retry bool, err error) {
	r, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	if os.IsNotExist(err) {
		return false, bkerror.New(bkerror.NotFound, "variable does not exist")
	}
	if err != nil {
		return s.classifyAccessError(err)
	}
	defer r.Close()

	restore, err := makeVarFileMutable(r)
	if err != nil {
		return s.classifyAccessError(err)
	}
	defer restore()

	if err := s.fs.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, bkerror.New(bkerror.NotFound, "variable does not exist")
		}
		return s.classifyAccessError(err)
	}
	return false, nil
}

func (s *LinuxStore) Exists(name string) bool {
	_, _, err := s.Read(name)
	return err == nil
}

// classifyAccessError distinguishes a genuine permission denial (don't
// retry) from an immutable-flag race (retry, per makeVarFileMutable's
// own inode flags having been raised again by a concurrent writer).
func (s *LinuxStore) classifyAccessError(err error) (retry bool, out error) {
	if !os.IsPermission(err) {
		return false, bkerror.Wrap(bkerror.Io, err, "accessing variable file")
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false, bkerror.New(bkerror.PermissionDenied, "permission denied")
	}
	if errno == syscall.EACCES {
		return false, bkerror.New(bkerror.PermissionDenied, "permission denied")
	}
	// EPERM: the file exists but is immutable, most likely due to a
	// race with another writer. Worth retrying.
	return true, bkerror.New(bkerror.PermissionDenied, "permission denied")
}

func maybeRetry(n int, fn func() (bool, error)) error {
	for i := 1; ; i++ {
		retry, err := fn()
		switch {
		case i > n:
			return err
		case !retry:
			return err
		case err == nil:
			return nil
		}
	}
}

// varFile is the subset of *os.File behavior the immutable-flag dance
// needs: Close, plus the descriptor and name the two inode-flag ioctls
// use.
type varFile interface {
	io.Closer
	Fd() uintptr
	Name() string
}

// makeVarFileMutable clears FS_IMMUTABLE_FL on f if set, returning a
// restore function that puts the flag back. If the flag was already
// clear, restore is a no-op.
func makeVarFileMutable(f varFile) (restore func() error, err error) {
	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return nil, &os.PathError{Op: "ioctl", Path: f.Name(), Err: err}
	}
	if flags&efivarfsImmutable == 0 {
		return func() error { return nil }, nil
	}
	cleared := flags &^ efivarfsImmutable
	if err := unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, cleared); err != nil {
		return nil, &os.PathError{Op: "ioctl", Path: f.Name(), Err: err}
	}
	return func() error {
		return unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, flags)
	}, nil
}
