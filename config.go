package main

import (
	"os"
	"strings"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/settings"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const envPrefix = "GENPASS_"

type options struct {
	length       int
	lower        bool
	upper        bool
	digits       bool
	custom       bool
	chars        string
	count        int
	clip         bool
	settingsPath string
	verbose      bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.length, "length", "l", settings.DefaultLength, "password length, 8 to 128 (default: last used)")
	fs.BoolVar(&o.lower, "lower", true, "include lowercase letters")
	fs.BoolVar(&o.upper, "upper", true, "include uppercase letters")
	fs.BoolVar(&o.digits, "digits", true, "include digits")
	fs.BoolVar(&o.custom, "custom", false, "include the custom characters")
	fs.StringVar(&o.chars, "chars", settings.DefaultCustomChars, "custom characters (default: last used)")
	fs.IntVarP(&o.count, "count", "c", 1, "number of passwords to generate")
	fs.BoolVar(&o.clip, "clip", false, "copy the password to the clipboard and clear it after 30 seconds")
	fs.StringVar(&o.settingsPath, "settings", "", "settings file (default: user config directory)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output")
}

// envValue is a flag value taken from the environment.
type envValue struct {
	key, val string
}

// loadEnv sets every flag not given on the command line from its environment
// variable, GENPASS_ followed by the flag name in upper snake case. It returns
// the values it applied so they can be logged once the logger is configured.
func loadEnv(fs *pflag.FlagSet) ([]envValue, error) {
	var (
		applied []envValue
		err     error
	)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || err != nil {
			return
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		val, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		if setErr := fs.Set(f.Name, val); setErr != nil {
			err = errors.Wrapf(setErr, "invalid %s", key)
			return
		}
		applied = append(applied, envValue{key: key, val: val})
	})
	return applied, err
}

func logEnv(applied []envValue) {
	for _, v := range applied {
		zap.L().Debug("config", zap.String("from", "env"), zap.String("key", v.key), zap.String("val", v.val))
	}
}

// settingsFor merges the persisted settings with the flags the user set.
func (o *options) settingsFor(fs *pflag.FlagSet, stored settings.Settings) settings.Settings {
	set := stored
	if fs.Changed("length") {
		set.Length = o.length
	}
	if fs.Changed("chars") {
		set.CustomChars = o.chars
	}
	return set
}

func (o *options) classes() pwgen.ClassSet {
	var classes pwgen.ClassSet
	if o.lower {
		classes = classes.With(pwgen.Lowercase)
	}
	if o.upper {
		classes = classes.With(pwgen.Uppercase)
	}
	if o.digits {
		classes = classes.With(pwgen.Digits)
	}
	if o.custom {
		classes = classes.With(pwgen.Custom)
	}
	return classes
}

func initLogger(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
