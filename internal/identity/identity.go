// Package identity reports who this editor instance is: host and version.
package identity

import (
	"os"
	"runtime/debug"
)

// DefaultVersion is the fallback version when the binary carries no
// version information.
const DefaultVersion = "dev"

// Version can be set at build time with
// -ldflags "-X github.com/monitoradlo/monitoradlo-go/internal/identity.Version=1.0.0".
var Version = ""

// Info holds instance identity information.
type Info struct {
	Hostname string
	Version  string
}

// Get returns the identity of the running instance.
func Get() Info {
	return Info{Hostname: GetHostname(), Version: GetVersion()}
}

// GetHostname returns the system hostname.
func GetHostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "localhost"
	}
	return h
}

// GetVersion returns the build-time version, else the main module version
// recorded by the Go toolchain, else DefaultVersion.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	return versionFromBuildInfo(debug.ReadBuildInfo())
}

func versionFromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return DefaultVersion
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return DefaultVersion
}

// InstanceName is the name advertised on the network.
func (i Info) InstanceName() string {
	return "monitoradlo on " + i.Hostname
}
