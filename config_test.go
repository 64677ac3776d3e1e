package main

import (
	"testing"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/settings"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestFlags(t *testing.T, args ...string) (*options, *pflag.FlagSet) {
	t.Helper()
	opts := &options{}
	fs := pflag.NewFlagSet("genpass", pflag.ContinueOnError)
	opts.addFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return opts, fs
}

func TestSettingsForKeepsStored(t *testing.T) {
	opts, fs := newTestFlags(t)
	stored := settings.Settings{CustomChars: "#!", Length: 40}
	if set := opts.settingsFor(fs, stored); set != stored {
		t.Fatal("unset flags overrode the stored settings:", set)
	}
	if opts.classes() != pwgen.NewClassSet(pwgen.Lowercase, pwgen.Uppercase, pwgen.Digits) {
		t.Fatal("unexpected default classes", opts.classes())
	}
}

func TestSettingsForFlags(t *testing.T) {
	opts, fs := newTestFlags(t, "-l", "64", "--chars", "@", "--upper=false", "--custom")
	set := opts.settingsFor(fs, settings.Default())
	if set.Length != 64 || set.CustomChars != "@" {
		t.Fatal("flags did not override the stored settings:", set)
	}
	if opts.classes() != pwgen.NewClassSet(pwgen.Lowercase, pwgen.Digits, pwgen.Custom) {
		t.Fatal("unexpected classes", opts.classes())
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GENPASS_LENGTH", "32")
	t.Setenv("GENPASS_DIGITS", "false")
	t.Setenv("GENPASS_CHARS", "%")

	opts, fs := newTestFlags(t, "--chars", "&")
	applied, err := loadEnv(fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 2 {
		t.Fatal("expected two values from the environment, got", applied)
	}
	set := opts.settingsFor(fs, settings.Default())
	if set.Length != 32 {
		t.Fatal("environment did not set the length, got", set.Length)
	}
	if set.CustomChars != "&" {
		t.Fatal("environment overrode a command line flag, got", set.CustomChars)
	}
	if opts.classes().Has(pwgen.Digits) {
		t.Fatal("environment did not disable digits")
	}

	t.Setenv("GENPASS_COUNT", "many")
	_, fs = newTestFlags(t)
	if _, err := loadEnv(fs); err == nil {
		t.Fatal("expected an invalid environment value to be rejected")
	}
}

func TestLogEnvAfterLoggerInit(t *testing.T) {
	t.Setenv("GENPASS_LENGTH", "48")
	_, fs := newTestFlags(t)
	applied, err := loadEnv(fs)
	if err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(core))()
	logEnv(applied)

	entries := logs.FilterField(zap.String("key", "GENPASS_LENGTH")).All()
	if len(entries) != 1 || entries[0].ContextMap()["val"] != "48" {
		t.Fatal("environment value was not logged:", logs.All())
	}
}
