package procon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// hidrawForUSB finds the /dev/hidrawX node belonging to the USB device at
// the given bus and address, by walking /sys/class/hidraw entries up the
// sysfs tree to the owning USB device.
func hidrawForUSB(targetBus, targetAddr int) (string, error) {
	base := "/sys/class/hidraw"
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", base, err)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "hidraw") {
			continue
		}
		devLink := filepath.Join(base, entry.Name(), "device")
		if matchesUSBDevice(devLink, targetBus, targetAddr) {
			return "/dev/" + entry.Name(), nil
		}
	}

	return "", fmt.Errorf("no hidraw node for USB bus %d device %d", targetBus, targetAddr)
}

// matchesUSBDevice walks up from a sysfs path looking for the busnum and
// devnum files of the owning USB device.
func matchesUSBDevice(startPath string, targetBus, targetAddr int) bool {
	realPath, err := filepath.EvalSymlinks(startPath)
	if err != nil {
		return false
	}

	dir := realPath
	for i := 0; i < 6; i++ {
		busFile := filepath.Join(dir, "busnum")
		devFile := filepath.Join(dir, "devnum")

		if fileExists(busFile) && fileExists(devFile) {
			bus, _ := readIntFile(busFile)
			addr, _ := readIntFile(devFile)
			return bus == targetBus && addr == targetAddr
		}

		dir = filepath.Clean(filepath.Join(dir, ".."))
		if dir == "/" || dir == "." {
			break
		}
	}
	return false
}

func readIntFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
