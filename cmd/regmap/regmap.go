package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/regmap/config"

	"github.com/scott-cotton/cli"
)

func regmapMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Color && cfg.NoColor {
		return fmt.Errorf("%w: must specify at most one of -color -nocolor", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// loadFile reads the project file, once.
func (cfg *MainConfig) loadFile() error {
	if cfg.File != nil {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	f, err := config.Load(wd)
	if err != nil {
		return err
	}
	cfg.File = f
	return nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	return nil, nil
}

// writer returns the destination selected with -o. Output bound for a
// file is held in memory until flush, so a failed run leaves the file as
// it was.
func (cfg *MainConfig) writer(stdout io.Writer) io.Writer {
	if cfg.Out == "" || cfg.Out == "-" {
		return stdout
	}
	cfg.pending = &bytes.Buffer{}
	return cfg.pending
}

// flush writes held output to the -o file.
func (cfg *MainConfig) flush() error {
	if cfg.pending == nil {
		return nil
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := cfg.pending.WriteTo(f); err != nil {
		return err
	}
	cfg.pending = nil
	return f.Close()
}
