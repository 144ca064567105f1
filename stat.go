// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"time"
)

// FileInfo is an owned value copy of the metadata reported by the operating
// system for one file. Unlike fs.FileInfo it carries no reference back to the
// filesystem, so a returned copy stays valid after the cache entry it came
// from is evicted or overwritten.
type FileInfo struct {
	Size    int64       // length in bytes for regular files
	Mode    fs.FileMode // file mode and permission bits
	ModTime time.Time   // last modification time
}

// IsDir reports whether the metadata describes a directory.
func (i FileInfo) IsDir() bool { return i.Mode.IsDir() }

// StatFunc is the metadata query primitive consumed by the cache. It returns
// the metadata of the named file, or an error wrapping the syscall.Errno
// reported by the operating system. The default implementation stats through
// os.Stat.
type StatFunc func(name string) (FileInfo, error)

// osStat is the default StatFunc.
func osStat(name string) (FileInfo, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return FileInfo{}, err //nolint:wrapcheck
	}
	return FileInfo{
		Size:    fi.Size(),
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
	}, nil
}

// Result represents the outcome of one Cache.Stat call. A failed stat of the
// file is an ordinary result, not an error: OK is false and Errno carries the
// OS error code. Info is the file metadata known to the cache at the time of
// the call, which is the zero value if the most recent stat failed.
type Result struct {
	OK    bool
	Errno syscall.Errno
	Info  FileInfo
}

// Err returns nil if the stat succeeded, or the OS error code otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return r.Errno
}

// errnoOf extracts the OS error code from an error returned by a StatFunc.
// Errors that do not wrap a syscall.Errno, which can not happen with the
// default os.Stat implementation, are mapped to EIO.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EIO
}
