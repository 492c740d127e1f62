package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	if dark := DetectTheme(); !dark.IsDark {
		t.Fatalf("expected dark theme for a black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if light := DetectTheme(); light.IsDark {
		t.Fatalf("expected light theme for a white background")
	}

	t.Setenv("COLORFGBG", "")
	if def := DetectTheme(); !def.IsDark {
		t.Fatalf("expected dark theme by default")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "0;15")
	if !ThemeFor("dark").IsDark {
		t.Error("dark should force the dark theme")
	}
	if ThemeFor("light").IsDark {
		t.Error("light should force the light theme")
	}
	if ThemeFor("auto").IsDark {
		t.Error("auto should follow COLORFGBG")
	}
}
