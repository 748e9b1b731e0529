// Package platform describes the capabilities of the device we're running on.
//
// Capabilities are computed once at startup and handed to whatever needs
// them. Nothing in this package caches state.
package platform

import (
	"fmt"
	"runtime"
)

type OS uint8

const (
	Desktop OS = iota
	IOS
	Android
)

func (os OS) String() string {
	switch os {
	case Desktop:
		return "desktop"
	case IOS:
		return "ios"
	case Android:
		return "android"
	default:
		return "invalid"
	}
}

// Parse parses the names produced by OS.String. The empty string is not
// accepted.
func Parse(s string) (OS, error) {
	switch s {
	case "desktop":
		return Desktop, nil
	case "ios":
		return IOS, nil
	case "android":
		return Android, nil
	default:
		return 0, fmt.Errorf("unknown platform %q", s)
	}
}

func (os OS) Mobile() bool {
	return os == IOS || os == Android
}

type Capabilities struct {
	OS OS
	// Touch is set when the primary input is a touch screen.
	Touch bool
	// MouseEmulation lets mouse drags drive touch gestures, which is how the
	// gestures are used on desktop.
	MouseEmulation bool
}

// Detect computes the capabilities of the running platform. force overrides
// the detected OS when it isn't empty.
func Detect(force string, mouseEmulation bool) (Capabilities, error) {
	os := fromGOOS(runtime.GOOS)
	if force != "" {
		var err error
		os, err = Parse(force)
		if err != nil {
			return Capabilities{}, err
		}
	}
	return For(os, mouseEmulation), nil
}

// For returns the capabilities of a given OS.
func For(os OS, mouseEmulation bool) Capabilities {
	return Capabilities{
		OS:             os,
		Touch:          os.Mobile(),
		MouseEmulation: mouseEmulation || !os.Mobile(),
	}
}

func fromGOOS(goos string) OS {
	switch goos {
	case "ios":
		return IOS
	case "android":
		return Android
	default:
		return Desktop
	}
}
