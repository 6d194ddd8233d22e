package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// validCharacters is a list of characters valid in the appBuild string
const validCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// revisionLength is the number of VCS revision characters used as build
// metadata
const revisionLength = 12

// appBuild is defined as a variable so it can be overridden during the build
// process with '-ldflags "-X github.com/kaspanet/blockminer/version.appBuild=foo"' if needed.
// It MUST only contain characters from validCharacters.
// When empty, the VCS revision blockminer was built from is used instead.
var appBuild string

var (
	version     string
	versionOnce sync.Once
)

// Version returns the application version as a properly formed string
func Version() string {
	versionOnce.Do(func() {
		version = fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)

		build := appBuild
		if build == "" {
			build = revisionBuild(debug.ReadBuildInfo())
		}
		// The build metadata string is not appended if it contains
		// invalid characters.
		build = checkAppBuild(build)
		if build != "" {
			version = fmt.Sprintf("%s-%s", version, build)
		}
	})
	return version
}

// revisionBuild returns build metadata out of the VCS settings the go tool
// stamps into the binary, e.g. "1a2b3c4d5e6f" or "1a2b3c4d5e6f-dirty"
func revisionBuild(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > revisionLength {
		revision = revision[:revisionLength]
	}
	if modified {
		revision += "-dirty"
	}
	return revision
}

// checkAppBuild returns the passed string unless it contains any characters not in validCharacters
// If any invalid characters are encountered - an empty string is returned
func checkAppBuild(str string) string {
	for _, r := range str {
		if !strings.ContainsRune(validCharacters, r) {
			return ""
		}
	}
	return str
}
