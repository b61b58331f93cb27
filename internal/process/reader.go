// Package process reads the live process table.
//
// The process table is inherently racy under polling: a pid listed a moment
// ago may be gone, or may belong to a user whose files are unreadable, by the
// time its entries are opened. Every per-process read in this package treats
// a failure as "no data for this process this cycle" and never as an error.
package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/prometheus/procfs"
)

// DefaultMountPoint is where the proc filesystem lives on Linux hosts
const DefaultMountPoint = procfs.DefaultMountPoint

// Source yields process identifiers and per-process records.
// Reader is the production implementation; tests substitute fakes.
type Source interface {
	// ListPIDs enumerates the currently visible process ids.
	// It returns an empty slice when the table is unavailable.
	ListPIDs() []int

	// Read returns the record for pid, or false if the process is gone or
	// unreadable.
	Read(pid int) (Record, bool)
}

// Reader reads process records from a proc filesystem
type Reader struct {
	fs procfs.FS
}

// NewReader opens the proc filesystem mounted at mountPoint.
// An empty mountPoint selects DefaultMountPoint.
func NewReader(mountPoint string) (*Reader, error) {
	if mountPoint == "" {
		mountPoint = DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("failed to open process table at %s: %w", mountPoint, err)
	}
	return &Reader{fs: fs}, nil
}

// ListPIDs returns the visible pids in ascending order
func (r *Reader) ListPIDs() []int {
	procs, err := r.fs.AllProcs()
	if err != nil {
		return []int{}
	}
	pids := make([]int, 0, len(procs))
	for _, p := range procs {
		pids = append(pids, p.PID)
	}
	sort.Ints(pids)
	return pids
}

// Read collects the identity of pid. A missing or unreadable cmdline means the
// process exited or is off limits and yields false. The executable link and the
// short name are optional: failures leave them empty and the name falls back to
// the executable basename, the first argument, then the pid.
func (r *Reader) Read(pid int) (Record, bool) {
	proc, err := r.fs.Proc(pid)
	if err != nil {
		return Record{}, false
	}

	rawArgs, err := proc.CmdLine()
	if err != nil {
		return Record{}, false
	}
	argv := make([]string, 0, len(rawArgs))
	for _, arg := range rawArgs {
		if arg == "" {
			continue
		}
		argv = append(argv, strings.ToValidUTF8(arg, ""))
	}

	exe, err := proc.Executable()
	if err != nil {
		exe = ""
	}

	name, err := proc.Comm()
	if err != nil {
		name = ""
	}
	name = strings.TrimSpace(strings.ToValidUTF8(name, ""))
	if name == "" {
		name = fallbackName(pid, exe, argv)
	}

	return Record{
		PID:     pid,
		Name:    name,
		Exe:     exe,
		Cmdline: QuoteArgs(argv),
	}, true
}

// Snapshot reads every visible process, skipping the ones that vanish between
// listing and reading.
func Snapshot(src Source) []Record {
	pids := src.ListPIDs()
	records := make([]Record, 0, len(pids))
	for _, pid := range pids {
		if rec, ok := src.Read(pid); ok {
			records = append(records, rec)
		}
	}
	return records
}

// QuoteArgs shell-quotes each argument and joins them with single spaces so
// the result can be pasted back into a POSIX shell.
func QuoteArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellescape.Quote(arg)
	}
	return strings.Join(quoted, " ")
}
