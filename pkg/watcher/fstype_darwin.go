//go:build darwin

package watcher

import (
	"strings"

	"golang.org/x/sys/unix"
)

func detectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FSTypeUnknown
	}
	name := unix.ByteSliceToString(st.Fstypename[:])
	switch {
	case name == "nfs":
		return FSTypeNFS
	case name == "smbfs":
		return FSTypeSMB
	case strings.HasPrefix(name, "macfuse"), strings.HasPrefix(name, "osxfuse"), name == "fuse":
		return FSTypeFUSE
	}
	return FSTypeLocal
}
