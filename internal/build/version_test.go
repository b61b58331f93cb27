package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Subtests modify package globals and must run sequentially.
func TestVersionGlobals(t *testing.T) {
	t.Run("IsDevBuild", func(t *testing.T) {
		tests := map[string]struct {
			version string
			want    bool
		}{
			"dev version":     {version: "dev", want: true},
			"release version": {version: "v0.3.0", want: false},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				orig := Version
				Version = tt.version
				defer func() { Version = orig }()

				assert.Equal(t, tt.want, IsDevBuild())
			})
		}
	})

	t.Run("ShortCommit", func(t *testing.T) {
		tests := map[string]struct {
			commit string
			want   string
		}{
			"full hash": {commit: "0123456789abcdef", want: "01234567"},
			"short":     {commit: "abc", want: "abc"},
			"unknown":   {commit: "unknown", want: "unknown"},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				orig := Commit
				Commit = tt.commit
				defer func() { Commit = orig }()

				assert.Equal(t, tt.want, ShortCommit())
			})
		}
	})
}
