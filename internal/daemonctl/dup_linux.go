//go:build linux

package daemonctl

import "golang.org/x/sys/unix"

// dup2 is missing on some linux architectures; dup3 covers all of them but
// rejects oldfd == newfd.
func dupOnto(oldfd, newfd int) error {
	if oldfd == newfd {
		return nil
	}
	return unix.Dup3(oldfd, newfd, 0)
}
