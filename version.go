// Package hagglego provides the version information for haggle-go.
package hagglego

// Version is the current version of haggle-go.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
