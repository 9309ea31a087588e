package daemonctl

import "os"

// HelperArg is the hidden first argument that turns a tenebractl process into
// the launch helper. Binaries that use Controller.Start must call
// MaybeRunHelper at the top of main (and of TestMain in tests).
const HelperArg = "__tenebractl-launch-helper"

// MaybeRunHelper runs the launch helper and never returns when the process
// was started as one. Otherwise it returns immediately.
func MaybeRunHelper() {
	if len(os.Args) < 2 || os.Args[1] != HelperArg {
		return
	}
	os.Exit(runHelper(os.Args[2:]))
}
