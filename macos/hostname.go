package macos

import (
	"os"
	"regexp"
	"strings"
)

var hostnameJunk = regexp.MustCompile("[^a-zA-Z0-9_-]+")

// GetHostname returns the sanitized hostname, or "localhost" when the
// system will not say.
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return SanitizeHostname(hostname)
}

// SanitizeHostname keeps the first label of name and drops every character
// that is not safe in an MQTT topic level.
func SanitizeHostname(name string) string {
	// "name.local" => "name"
	firstPart := strings.Split(name, ".")[0]

	// remove all symbols, but [a-zA-Z0-9_-]
	firstPart = hostnameJunk.ReplaceAllString(firstPart, "")
	if firstPart == "" {
		return "localhost"
	}
	return firstPart
}
