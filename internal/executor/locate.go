package executor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ZpoolPaths lists common locations of the zpool binary. Some hosts run
// tools with a PATH that omits the sbin directories.
var ZpoolPaths = []string{
	"/usr/sbin/zpool",
	"/sbin/zpool",
	"/usr/local/sbin/zpool",
	"/usr/local/bin/zpool",
	"/usr/bin/zpool",
}

// LsblkPaths lists common locations of the lsblk binary.
var LsblkPaths = []string{
	"/bin/lsblk",
	"/usr/bin/lsblk",
	"/sbin/lsblk",
}

// LocateBinary resolves a program name. An absolute configured path is
// returned unchanged; otherwise PATH is searched first and then each of
// the fallback locations.
func LocateBinary(name string, fallbacks []string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	for _, path := range fallbacks {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%s binary not found in PATH or common locations", name)
}
