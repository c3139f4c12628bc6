// Package device derives human-readable device names from user-agent strings
// for login audit trails.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// UnknownDevice is reported when no user-agent was captured.
const UnknownDevice = "Unknown Device"

// ParseUserAgent turns a raw user-agent string into a display name like
// "Chrome on Mac OS X". Unrecognized agents still produce a "<browser> on
// <platform>" string from whatever the parser extracted.
func ParseUserAgent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownDevice
	}

	ua := useragent.New(trimmed)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}

	switch {
	case browser == "" && os == "":
		return UnknownDevice
	case browser == "":
		return "Unknown Browser on " + os
	case os == "":
		return browser + " on Unknown Platform"
	default:
		return browser + " on " + os
	}
}
