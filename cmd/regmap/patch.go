package main

import (
	"fmt"
	"io"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/libdiff"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	if err := runPatch(cfg, cc.In, cfg.writer(cc.Out), args[0], args[1:]); err != nil {
		return err
	}
	return cfg.flush()
}

func runPatch(cfg *PatchConfig, in io.Reader, w io.Writer, patchFile string, files []string) error {
	p, err := getObjFile(in, patchFile)
	if err != nil {
		return fmt.Errorf("error decoding patch %s: %w", patchFile, err)
	}
	if len(files) == 0 {
		files = []string{"-"}
	}
	opts := cfg.encOpts(w)
	for _, f := range files {
		doc, err := getObjFile(in, f)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", f, err)
		}
		res, err := libdiff.Apply(doc, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", f, err)
		}
		if err := encode.Encode(res, w, opts...); err != nil {
			return err
		}
	}
	return nil
}
