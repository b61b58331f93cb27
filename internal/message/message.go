// Package message renders the notification title and body templates.
//
// Templates use brace placeholders such as {app} or {pid}. A placeholder whose
// name has no field renders as the empty string, so a typo in a user template
// degrades the text instead of failing the notification. Doubled braces
// ({{ and }}) produce literal braces.
package message

import (
	"strconv"
	"strings"

	"github.com/appwatch/appwatch/internal/process"
)

// Field names available to templates
const (
	FieldApp     = "app"
	FieldPID     = "pid"
	FieldExe     = "exe"
	FieldCmdline = "cmdline"
)

// Default templates shown when the user does not configure any
const (
	DefaultTitle   = "检测到应用已启动: {app}"
	DefaultMessage = "应用 {app} (PID {pid}) 已启动\n{cmdline}"
)

// Fields builds the standard template fields for a process record
func Fields(rec process.Record) map[string]string {
	return map[string]string{
		FieldApp:     rec.AppName(),
		FieldPID:     strconv.Itoa(rec.PID),
		FieldExe:     rec.Exe,
		FieldCmdline: rec.Cmdline,
	}
}

// Render substitutes {name} placeholders in tpl with values from fields.
// Unknown names render empty, an unterminated '{' is kept literally, and a
// lone '}' is copied through. Render never fails.
func Render(tpl string, fields map[string]string) string {
	var b strings.Builder
	b.Grow(len(tpl))

	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		switch c {
		case '{':
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tpl[i+1:], '}')
			if end < 0 {
				b.WriteString(tpl[i:])
				return b.String()
			}
			name := tpl[i+1 : i+1+end]
			b.WriteString(fields[strings.TrimSpace(name)])
			i += end + 1
		case '}':
			if i+1 < len(tpl) && tpl[i+1] == '}' {
				i++
			}
			b.WriteByte('}')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholders lists the placeholder names referenced by tpl in order of
// appearance, used by doctor to flag names that will always render empty.
func Placeholders(tpl string) []string {
	var names []string
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '{' {
			continue
		}
		if i+1 < len(tpl) && tpl[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(tpl[i+1:], '}')
		if end < 0 {
			break
		}
		names = append(names, strings.TrimSpace(tpl[i+1:i+1+end]))
		i += end + 1
	}
	return names
}

// Known reports whether name is one of the standard template fields
func Known(name string) bool {
	switch name {
	case FieldApp, FieldPID, FieldExe, FieldCmdline:
		return true
	default:
		return false
	}
}
