package sysinfo

import (
	"regexp"
	"strings"
)

// Device is the coarse device class of a User-Agent.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceBot     Device = "bot"
	DeviceUnknown Device = "unknown"
)

// UserAgent is a parsed User-Agent header.
type UserAgent struct {
	Raw            string `json:"raw"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version,omitempty"`
	Engine         string `json:"engine,omitempty"`
	OS             string `json:"os"`
	OSVersion      string `json:"os_version,omitempty"`
	Device         Device `json:"device"`
}

type uaRule struct {
	name string
	re   *regexp.Regexp
}

// Order matters: Edge and Opera also carry "Chrome", Chrome carries "Safari".
var browserRules = []uaRule{
	{"Edge", regexp.MustCompile(`Edg(?:e|A|iOS)?/([\d.]+)`)},
	{"Opera", regexp.MustCompile(`(?:OPR|Opera)/([\d.]+)`)},
	{"Samsung Internet", regexp.MustCompile(`SamsungBrowser/([\d.]+)`)},
	{"Yandex", regexp.MustCompile(`YaBrowser/([\d.]+)`)},
	{"Firefox", regexp.MustCompile(`(?:Firefox|FxiOS)/([\d.]+)`)},
	{"Chrome", regexp.MustCompile(`(?:Chrome|CriOS)/([\d.]+)`)},
	{"Safari", regexp.MustCompile(`Version/([\d.]+).*Safari/`)},
	{"Internet Explorer", regexp.MustCompile(`(?:MSIE |Trident/.*rv:)([\d.]+)`)},
}

var osRules = []uaRule{
	{"iOS", regexp.MustCompile(`(?:iPhone|iPad|iPod).*? OS ([\d_]+)`)},
	{"Android", regexp.MustCompile(`Android ([\d.]+)`)},
	{"Windows", regexp.MustCompile(`Windows NT ([\d.]+)`)},
	{"macOS", regexp.MustCompile(`Mac OS X ([\d_.]+)`)},
	{"ChromeOS", regexp.MustCompile(`CrOS \S+ ([\d.]+)`)},
	{"Linux", regexp.MustCompile(`Linux()`)},
}

var windowsNames = map[string]string{
	"10.0": "10/11",
	"6.3":  "8.1",
	"6.2":  "8",
	"6.1":  "7",
}

var botPattern = regexp.MustCompile(`(?i)bot|crawler|spider|slurp|curl/|wget/|headless`)

// ParseUserAgent extracts browser, OS and device class. Unrecognised parts
// are reported as "Unknown".
func ParseUserAgent(ua string) UserAgent {
	ua = strings.TrimSpace(ua)
	out := UserAgent{Raw: ua, Browser: "Unknown", OS: "Unknown", Device: DeviceUnknown}
	if ua == "" {
		return out
	}

	for _, r := range browserRules {
		if m := r.re.FindStringSubmatch(ua); m != nil {
			out.Browser, out.BrowserVersion = r.name, m[1]
			break
		}
	}

	for _, r := range osRules {
		if m := r.re.FindStringSubmatch(ua); m != nil {
			out.OS = r.name
			out.OSVersion = strings.ReplaceAll(m[1], "_", ".")
			break
		}
	}
	if out.OS == "Windows" {
		if name, ok := windowsNames[out.OSVersion]; ok {
			out.OSVersion = name
		}
	}

	switch {
	case strings.Contains(ua, "Gecko/") && out.Browser == "Firefox":
		out.Engine = "Gecko"
	case strings.Contains(ua, "AppleWebKit/") && (out.Browser == "Safari" || out.OS == "iOS"):
		out.Engine = "WebKit"
	case strings.Contains(ua, "AppleWebKit/"):
		out.Engine = "Blink"
	case strings.Contains(ua, "Trident/"):
		out.Engine = "Trident"
	}

	out.Device = deviceClass(ua, out.OS)
	return out
}

func deviceClass(ua, os string) Device {
	switch {
	case botPattern.MatchString(ua):
		return DeviceBot
	case strings.Contains(ua, "iPad") || strings.Contains(ua, "Tablet") ||
		(os == "Android" && !strings.Contains(ua, "Mobile")):
		return DeviceTablet
	case strings.Contains(ua, "Mobi") || strings.Contains(ua, "iPhone") || strings.Contains(ua, "iPod"):
		return DeviceMobile
	case os == "Windows" || os == "macOS" || os == "Linux" || os == "ChromeOS":
		return DeviceDesktop
	default:
		return DeviceUnknown
	}
}
