//go:build windows

package preflight

import (
	"golang.org/x/sys/windows"
)

// freeBytes returns the bytes available to the calling user on the volume
// holding dir. Quotas are taken into account by GetDiskFreeSpaceEx.
func freeBytes(dir string) (uint64, error) {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, err
	}
	var freeAvailable, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &freeAvailable, &totalBytes, &totalFree); err != nil {
		return 0, err
	}
	return freeAvailable, nil
}
