package utils

import (
	"fmt"

	"github.com/mssola/user_agent"
)

// FormatUserAgent condenses a raw User-Agent header into a readable
// "browser on platform" string for audit logging.
func FormatUserAgent(raw string) string {
	if raw == "" {
		return "unknown"
	}
	ua := user_agent.New(raw)
	browser, version := ua.Browser()
	if browser == "" {
		return raw
	}
	return fmt.Sprintf("%s %s on %s", browser, version, ua.OS())
}
