package probe

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// Platform is the kernel's own identity as reported by uname.
type Platform struct {
	System        string // sysname, e.g. Linux
	KernelRelease string // e.g. 6.5.0-14-generic
	OSVersion     string // kernel build banner
}

// ReadPlatform queries uname. When the syscall is unavailable the
// kernel version file supplies the system name and release instead and
// the build banner stays Unknown.
func ReadPlatform(kernelVersionPath string) Platform {
	p := Platform{
		System:        models.Unknown,
		KernelRelease: models.Unknown,
		OSVersion:     models.Unknown,
	}

	var uts unix.Utsname
	err := unix.Uname(&uts)
	if err == nil {
		p.System = orUnknown(unix.ByteSliceToString(uts.Sysname[:]))
		p.KernelRelease = orUnknown(unix.ByteSliceToString(uts.Release[:]))
		p.OSVersion = orUnknown(unix.ByteSliceToString(uts.Version[:]))
		return p
	}
	logrus.Debugf("uname unavailable, falling back to %s: %v", kernelVersionPath, err)

	if system, release, ok := platformFromVersionFile(kernelVersionPath); ok {
		p.System = system
		p.KernelRelease = release
	}
	return p
}

// platformFromVersionFile extracts the system name and kernel release
// from a banner of the form "Linux version 6.5.0-14-generic (...) ...".
func platformFromVersionFile(path string) (system, release string, ok bool) {
	line, lineOK := readLine(path)
	if !lineOK {
		return "", "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", "", false
	}
	return fields[0], fields[2], true
}

func orUnknown(s string) string {
	if s == "" {
		return models.Unknown
	}
	return s
}
