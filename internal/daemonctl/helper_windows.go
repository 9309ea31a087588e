//go:build windows

package daemonctl

// The windows daemon runs as a service, so there is no launch helper.
func runHelper([]string) int {
	return 2
}
