package main

import (
	"fmt"
	"strconv"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/repl"
	"github.com/avahowell/genpass/secureclip"
)

var (
	genCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "gen",
			Action: gen(a),
			Usage:  "gen [length]: generate a new password, optionally changing the length",
		}
	}

	lengthCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "length",
			Action: length(a),
			Usage:  fmt.Sprintf("length [n]: set the password length (%d to %d) and generate", pwgen.MinLength, pwgen.MaxLength),
		}
	}

	enableCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "enable",
			Action: toggle(a, true),
			Usage:  "enable [class]...: include lowercase, uppercase, digits or custom characters and generate",
		}
	}

	disableCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "disable",
			Action: toggle(a, false),
			Usage:  "disable [class]...: exclude lowercase, uppercase, digits or custom characters and generate",
		}
	}

	charsCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "chars",
			Action: chars(a),
			Usage:  "chars [characters]: set the custom characters and generate. Quote characters the shell would interpret.",
		}
	}

	clipCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "clip",
			Action: clip(a),
			Usage:  "clip: copy the last password to the clipboard",
		}
	}

	settingsCmd = func(a *app) repl.Command {
		return repl.Command{
			Name:   "settings",
			Action: showSettings(a),
			Usage:  "settings: show the current options",
		}
	}
)

func gen(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) > 1 {
			return "", fmt.Errorf("gen takes at most one argument. See help for usage.")
		}
		if len(args) == 1 {
			return length(a)(args)
		}
		password, err := a.generate(false)
		if err != nil {
			return "", err
		}
		return password + "\n", nil
	}
}

func length(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("length requires 1 argument. See help for usage.")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", pwgen.ErrLengthOutOfRange
		}

		prev := a.length
		a.length = n
		password, err := a.generate(false)
		if err != nil {
			a.length = prev
			return "", err
		}
		return password + "\n", nil
	}
}

func toggle(a *app, enable bool) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("at least one class is required. See help for usage.")
		}
		classes := a.classes
		for _, arg := range args {
			c, err := pwgen.ParseClass(arg)
			if err != nil {
				return "", err
			}
			if enable {
				classes = classes.With(c)
			} else {
				classes = classes.Without(c)
			}
		}

		// like a checkbox, the toggle sticks even if generation fails
		a.classes = classes
		password, err := a.generate(false)
		if err != nil {
			return "", err
		}
		return password + "\n", nil
	}
}

func chars(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("chars requires 1 argument. See help for usage.")
		}
		a.chars = args[0]
		password, err := a.generate(false)
		if err != nil {
			return "", err
		}
		return password + "\n", nil
	}
}

func clip(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 0 {
			return "", fmt.Errorf("clip takes no arguments. See help for usage.")
		}
		if a.password == "" {
			return "", fmt.Errorf("nothing to copy, generate a password first")
		}
		if err := secureclip.Clip(a.password); err != nil {
			return "", err
		}
		return fmt.Sprintf("copied to clipboard, will clear in %v\n", secureclip.Timeout()), nil
	}
}

func showSettings(a *app) repl.ActionFunc {
	return func(args []string) (string, error) {
		return fmt.Sprintf("Classes: %v\nCustom characters: %v\nLength: %v\nSettings file: %v\n",
			a.classes, a.chars, a.length, a.store.Path()), nil
	}
}

func startRepl(a *app) error {
	r := repl.New("genpass > ")
	r.AddCommand(genCmd(a))
	r.AddCommand(lengthCmd(a))
	r.AddCommand(enableCmd(a))
	r.AddCommand(disableCmd(a))
	r.AddCommand(charsCmd(a))
	r.AddCommand(clipCmd(a))
	r.AddCommand(settingsCmd(a))
	r.OnStop(func() {
		secureclip.Clear()
	})
	return r.Loop()
}
