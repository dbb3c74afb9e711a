//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package preflight

func freeBytes(dir string) (uint64, error) {
	return 0, errFreeSpaceUnsupported
}
