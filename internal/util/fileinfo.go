package util

import (
	"golang.org/x/sys/unix"
)

// FileInfo contains extended file information, including modification time, size, and inode number.
type FileInfo struct {
	ModTime int64  // Modification time in nanoseconds since the epoch
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number; changes when a file is replaced by rename
}

// GetFileInfo retrieves detailed file information, including inode number.
// Supported on Linux and macOS.
func GetFileInfo(path string) (*FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, err
	}

	return &FileInfo{
		ModTime: modTimeNanos(&st),
		Size:    st.Size,
		Inode:   uint64(st.Ino),
	}, nil
}

// Same reports whether two snapshots describe identical file contents on disk.
func (f *FileInfo) Same(other *FileInfo) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Inode == other.Inode && f.Size == other.Size && f.ModTime == other.ModTime
}
