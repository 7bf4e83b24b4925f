package main

import (
	"testing"

	"github.com/vanderheijden86/vitae/pkg/export"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{"view": false, "export": false, "serve": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats([]string{"svg", "json"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != export.FormatSVG || got[1] != export.FormatJSON {
		t.Fatalf("parseFormats = %v", got)
	}

	if _, err := parseFormats([]string{"gif"}); err == nil {
		t.Error("unknown format must be rejected")
	}
}
