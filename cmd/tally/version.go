package main

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"
	"strings"
)

// Version is the release version. Development builds leave it at "devel"
// and use the module version from the build info instead.
var Version = "devel"

// version returns a version descriptor and reports whether the
// version is a known release.
func version(human string) (_ string, known bool) {
	if human != "devel" {
		return human, true
	}
	if v, ok := buildInfoVersion(); ok {
		return v, false
	}
	return "devel", false
}

// versionString formats the version for the --version flag.
func versionString() string {
	v, release := version(Version)
	var sb strings.Builder
	switch {
	case release:
		sb.WriteString(v)
	case v == "devel":
		sb.WriteString("(no version)")
	default:
		fmt.Fprintf(&sb, "(devel, %s)", v)
	}
	fmt.Fprintf(&sb, ", %s", runtime.Version())
	if rev, ok := buildSetting("vcs.revision"); ok {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		fmt.Fprintf(&sb, ", commit %s", rev)
	}
	return sb.String()
}

func buildInfoVersion() (string, bool) {
	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	if info.Main.Version == "(devel)" || info.Main.Version == "" {
		return "", false
	}
	return info.Main.Version, true
}

func buildSetting(key string) (string, bool) {
	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}
