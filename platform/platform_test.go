package platform

import (
	"runtime"
	"testing"
)

func TestParse(t *testing.T) {
	for _, os := range []OS{Desktop, IOS, Android} {
		got, err := Parse(os.String())
		if err != nil || got != os {
			t.Errorf("Parse(%q)=(%v, %v), want %v", os.String(), got, err, os)
		}
	}
	for _, s := range []string{"", "iOS", "windows"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded", s)
		}
	}
}

func TestFor(t *testing.T) {
	tests := []struct {
		os    OS
		mouse bool
		want  Capabilities
	}{
		{Desktop, false, Capabilities{OS: Desktop, Touch: false, MouseEmulation: true}},
		{IOS, false, Capabilities{OS: IOS, Touch: true, MouseEmulation: false}},
		{Android, true, Capabilities{OS: Android, Touch: true, MouseEmulation: true}},
	}
	for _, tt := range tests {
		if got := For(tt.os, tt.mouse); got != tt.want {
			t.Errorf("For(%v, %t)=%+v, want %+v", tt.os, tt.mouse, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	caps, err := Detect("", false)
	if err != nil {
		t.Fatal(err)
	}
	if want := fromGOOS(runtime.GOOS); caps.OS != want {
		t.Errorf("Detect found %v, want %v", caps.OS, want)
	}

	caps, err = Detect("ios", false)
	if err != nil || caps.OS != IOS || !caps.Touch {
		t.Errorf("Detect(ios)=(%+v, %v)", caps, err)
	}

	if _, err := Detect("palm", false); err == nil {
		t.Error("Detect accepted an unknown platform")
	}
}
