package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo_Platform(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestGetInfo_JSONShape(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, got, key)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		in   BuildInfo
		bi   debug.BuildInfo
		want BuildInfo
	}{
		{
			name: "module version and vcs fill unset fields",
			in:   BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
			bi: debug.BuildInfo{
				Main: debug.Module{Version: "v1.4.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-02-03T04:05:06Z"},
				},
			},
			want: BuildInfo{Version: "v1.4.0", Commit: "0123456", Date: "2026-02-03T04:05:06Z"},
		},
		{
			name: "ldflags win",
			in:   BuildInfo{Version: "1.0.0", Commit: "abc", Date: "today"},
			bi: debug.BuildInfo{
				Main:     debug.Module{Version: "v9.9.9"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
			},
			want: BuildInfo{Version: "1.0.0", Commit: "abc", Date: "today"},
		},
		{
			name: "devel build stays dev",
			in:   BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
			bi:   debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			fillFromBuildInfo(&got, &tt.bi)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	str := String()

	assert.Contains(t, str, "wordrank ")
	assert.Contains(t, str, Short())
	assert.Contains(t, str, "commit:")
	assert.Contains(t, str, runtime.GOOS+"/"+runtime.GOARCH)
}
