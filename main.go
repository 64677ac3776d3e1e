package main

import (
	"fmt"
	"os"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/secureclip"
	"github.com/avahowell/genpass/settings"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const usage = `genpass generates random passwords containing at least one character of
every selected class. Lengths from 8 to 128 are accepted; the length and the
custom characters of the last generation are remembered.`

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func openApp(cmd *cobra.Command, opts *options) (*app, error) {
	path := opts.settingsPath
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store := settings.NewStore(path)

	stored, err := store.Load()
	if err != nil {
		zap.L().Warn("Using default settings", zap.Error(err))
	}
	set := opts.settingsFor(cmd.Flags(), stored)
	gen := pwgen.New(pwgen.WithLogger(zap.L().Named("pwgen")))
	return newApp(gen, store, set, opts.classes()), nil
}

func generateOnce(a *app, opts *options) error {
	if opts.count < 1 {
		return errors.Errorf("count must be at least 1, got %d", opts.count)
	}
	for i := 0; i < opts.count; i++ {
		password, err := a.generate(false)
		if err != nil {
			return err
		}
		fmt.Println(password)
	}
	if !opts.clip {
		return nil
	}
	if err := secureclip.Clip(a.password); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "copied to clipboard, will clear in %v\n", secureclip.Timeout())
	secureclip.Wait()
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var a *app

	root := &cobra.Command{
		Use:           "genpass",
		Short:         "Generate strong random passwords",
		Long:          usage,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			applied, err := loadEnv(cmd.Flags())
			if err != nil {
				return err
			}
			if err := initLogger(opts.verbose); err != nil {
				return err
			}
			logEnv(applied)
			a, err = openApp(cmd, opts)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			zap.L().Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.store.Wait()
			return generateOnce(a, opts)
		},
	}
	opts.addFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Generate passwords interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.store.Wait()
			return startRepl(a)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Generate passwords in a terminal UI with a length slider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.store.Wait()
			return runUI(a)
		},
	})
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		die(err)
	}
}
