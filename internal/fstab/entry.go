// Package fstab composes and persists the sshfs mount-table entry.
package fstab

import (
	"fmt"
	"strings"
)

// Mount entry constants. The option set keeps the mount alive across
// network restarts (_netdev) and readable by the application user
// (allow_other).
const (
	FSPrefix = "sshfs#"
	FSType   = "fuse"
)

// Entry describes a single sshfs fstab line.
type Entry struct {
	User         string
	Host         string
	RemotePath   string
	MountPoint   string
	IdentityFile string
}

// String renders the entry in fstab syntax:
//
//	sshfs#user@host:/remote /mnt fuse defaults,_netdev,allow_other,IdentityFile=/key 0 0
//
// This exact string is the unit of idempotence for persistence.
func (e Entry) String() string {
	options := strings.Join([]string{
		"defaults",
		"_netdev",
		"allow_other",
		"IdentityFile=" + e.IdentityFile,
	}, ",")

	return fmt.Sprintf("%s%s@%s:%s %s %s %s 0 0",
		FSPrefix, e.User, e.Host, e.RemotePath, e.MountPoint, FSType, options)
}

// AlreadyContains reports whether table holds a line exactly equal to
// entry. Matching is literal, not semantic: a reordered option string is
// treated as a different entry.
func AlreadyContains(table, entry string) bool {
	for _, line := range strings.Split(table, "\n") {
		if line == entry {
			return true
		}
	}
	return false
}
