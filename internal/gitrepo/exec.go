package gitrepo

import (
	"os/exec"
)

// execCommand is a seam for tests.
var execCommand = exec.CommandContext
