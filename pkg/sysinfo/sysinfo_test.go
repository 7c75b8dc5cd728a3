package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	r := Collect()

	assert.Equal(t, runtime.GOOS, r.OS)
	assert.Equal(t, runtime.GOARCH, r.Arch)
	assert.Equal(t, runtime.NumCPU(), r.CPUs)
	assert.Equal(t, runtime.Version(), r.GoVersion)
	assert.Positive(t, r.Goroutines)
	assert.NotZero(t, r.Memory.Sys)
	assert.False(t, r.CollectedAt.IsZero())
	assert.NotEmpty(t, r.Uptime)
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want UserAgent
	}{
		{
			name: "chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.110 Safari/537.36",
			want: UserAgent{Browser: "Chrome", BrowserVersion: "120.0.6099.110", Engine: "Blink", OS: "Windows", OSVersion: "10/11", Device: DeviceDesktop},
		},
		{
			name: "edge on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			want: UserAgent{Browser: "Edge", BrowserVersion: "120.0.2210.91", Engine: "Blink", OS: "Windows", OSVersion: "10/11", Device: DeviceDesktop},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: UserAgent{Browser: "Firefox", BrowserVersion: "121.0", Engine: "Gecko", OS: "Linux", Device: DeviceDesktop},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
			want: UserAgent{Browser: "Safari", BrowserVersion: "17.2", Engine: "WebKit", OS: "iOS", OSVersion: "17.2", Device: DeviceMobile},
		},
		{
			name: "safari on mac",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			want: UserAgent{Browser: "Safari", BrowserVersion: "17.1", Engine: "WebKit", OS: "macOS", OSVersion: "10.15.7", Device: DeviceDesktop},
		},
		{
			name: "chrome on android tablet",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: UserAgent{Browser: "Chrome", BrowserVersion: "120.0.0.0", Engine: "Blink", OS: "Android", OSVersion: "13", Device: DeviceTablet},
		},
		{
			name: "googlebot",
			ua:   "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			want: UserAgent{Browser: "Unknown", OS: "Unknown", Device: DeviceBot},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUserAgent(tt.ua)
			tt.want.Raw = tt.ua
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUserAgent_Empty(t *testing.T) {
	got := ParseUserAgent("   ")
	assert.Equal(t, UserAgent{Browser: "Unknown", OS: "Unknown", Device: DeviceUnknown}, got)
}
