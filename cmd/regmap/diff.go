package main

import (
	"fmt"
	"io"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	y1, err := getDoc(cc.In, args[0], cfg.Model, cfg.top())
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	y2, err := getDoc(cc.In, args[1], cfg.Model, cfg.top())
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cfg.writer(cc.Out), y1, y2)
	if err != nil {
		return err
	}
	if err := cfg.flush(); err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	if cfg.Reverse {
		a, b = b, a
	}
	cs := libdiff.Changes(a, b)
	if len(cs) == 0 {
		return false, nil
	}
	var (
		d   *ir.Node
		err error
	)
	if cfg.Patch {
		d, err = libdiff.MergePatch(a, b)
		if err != nil {
			return false, err
		}
	} else {
		d = libdiff.ToNode(cs)
	}
	if err := encode.Encode(d, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}
