package process

import (
	"path/filepath"
	"strconv"
)

// Record is the identity of one running process as seen in a single snapshot
type Record struct {
	PID     int
	Name    string
	Exe     string
	Cmdline string
}

// MatchKey returns the identity used to group debounce state: the name, else
// the executable path, else the decimal pid.
func (r Record) MatchKey() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Exe != "" {
		return r.Exe
	}
	return strconv.Itoa(r.PID)
}

// Candidates returns the fields tested against patterns, in priority order
func (r Record) Candidates() []string {
	return []string{r.Name, r.Exe, r.Cmdline}
}

// AppName is the display name for notifications: the name, else the
// executable's basename, else the match key.
func (r Record) AppName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Exe != "" {
		return filepath.Base(r.Exe)
	}
	return r.MatchKey()
}

// fallbackName resolves a missing short name from the executable path, then
// the first argv token, then the pid.
func fallbackName(pid int, exe string, argv []string) string {
	if exe != "" {
		return filepath.Base(exe)
	}
	if len(argv) > 0 && argv[0] != "" {
		return filepath.Base(argv[0])
	}
	return strconv.Itoa(pid)
}
