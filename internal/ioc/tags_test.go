package ioc

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeTagsDedupesCaseInsensitively(t *testing.T) {
	out := SanitizeTags([]string{"APT", "apt", "Apt "}, 50)
	if !reflect.DeepEqual(out, []string{"APT"}) {
		t.Errorf("SanitizeTags = %v, want [APT]", out)
	}
}

func TestSanitizeTagsStripsSpecialCharacters(t *testing.T) {
	out := SanitizeTags([]string{"c2<script>"}, 50)
	if len(out) != 1 || strings.ContainsAny(out[0], "<>") {
		t.Errorf("SanitizeTags = %v, special characters not stripped", out)
	}
}

func TestSanitizeTagsTruncatesToMaxLength(t *testing.T) {
	long := strings.Repeat("a", 100)
	out := SanitizeTags([]string{long}, 10)
	if len(out) != 1 || len(out[0]) != 10 {
		t.Errorf("SanitizeTags did not truncate: %v", out)
	}
}

func TestSanitizeTagsDropsEmptyAfterCleanup(t *testing.T) {
	out := SanitizeTags([]string{"   ", "<<<>>>", "valid"}, 50)
	if !reflect.DeepEqual(out, []string{"valid"}) {
		t.Errorf("SanitizeTags = %v, want only [valid]", out)
	}
}
