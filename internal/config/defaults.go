package config

import (
	"github.com/appwatch/appwatch/internal/message"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/process"
)

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"apps":          []string{},
		"regex":         false,
		"interval":      1.0,
		"debounce":      5.0,
		"once_per_pid":  false,
		"title":         message.DefaultTitle,
		"message":       message.DefaultMessage,
		"icon":          "",
		"width":         0,
		"height":        0,
		"backend":       notify.BackendAuto,
		"log_level":     "info",
		"show_progress": true,
		"proc_root":     process.DefaultMountPoint,
	}
}
