package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/signadot/regmap/config"

	"github.com/scott-cotton/cli"
)

func initCmd(cfg *InitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Init.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: init takes no arguments, got %v", cli.ErrUsage, args)
	}
	return runInit(cfg, config.Names[0])
}

func runInit(cfg *InitConfig, path string) error {
	c := config.DefaultConfig()
	if cfg.Top != "" {
		c.Top = cfg.Top
	}
	if cfg.OutFormat != nil {
		c.Format = cfg.OutFormat.String()
	}
	if cfg.Force {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := c.WriteFile(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s exists, use -f to overwrite", path)
		}
		return err
	}
	cfg.logf("wrote", "config", path)
	return nil
}
