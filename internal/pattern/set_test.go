package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		values  []string
		isRegex bool
		want    string
		wantErr bool
	}{
		"comma separated": {
			values: []string{"firefox,chrome"},
			want:   "firefox, chrome",
		},
		"newline separated": {
			values: []string{"firefox\nchrome\n"},
			want:   "firefox, chrome",
		},
		"mixed separators and padding": {
			values: []string{" firefox ,\n chrome,, \n slack "},
			want:   "firefox, chrome, slack",
		},
		"multiple values": {
			values: []string{"firefox", "", "code,zoom"},
			want:   "firefox, code, zoom",
		},
		"all whitespace yields nothing": {
			values: []string{"  ,\n , "},
			want:   "",
		},
		"nil yields nothing": {
			values: nil,
			want:   "",
		},
		"regex parts compile independently": {
			values:  []string{"^chrom(e|ium)$,fire.ox"},
			isRegex: true,
			want:    "/^chrom(e|ium)$/, /fire.ox/",
		},
		"invalid regex part fails": {
			values:  []string{"ok,bad("},
			isRegex: true,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			set, err := Parse(tt.values, tt.isRegex)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, set)
				return
			}
			assert.Equal(t, tt.want, set.String())
		})
	}
}

func TestSet_MatchAny(t *testing.T) {
	t.Parallel()

	set, err := Parse([]string{"firefox,code"}, false)
	require.NoError(t, err)

	assert.True(t, set.MatchAny("", "/usr/bin/firefox", ""))
	assert.True(t, set.MatchAny("Code", "", ""))
	assert.False(t, set.MatchAny("bash", "/bin/bash", "bash -l"))
	assert.False(t, set.MatchAny("", "", ""))
	assert.False(t, Set(nil).MatchAny("firefox"))
}

func TestSet_StringAndEqual(t *testing.T) {
	t.Parallel()

	a, err := Parse([]string{"firefox,code"}, false)
	require.NoError(t, err)
	b, err := Parse([]string{"firefox", "code"}, false)
	require.NoError(t, err)
	c, err := Parse([]string{"firefox,code"}, true)
	require.NoError(t, err)

	assert.Equal(t, "firefox, code", a.String())
	assert.Equal(t, "/firefox/, /code/", c.String())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a[:1]))
}
