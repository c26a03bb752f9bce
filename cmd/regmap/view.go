package main

import (
	"fmt"
	"io"

	"github.com/signadot/regmap/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	return runView(cfg, cc.In, cc.Out, args)
}

func runView(cfg *ViewConfig, in io.Reader, stdout io.Writer, files []string) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	if err := viewFiles(cfg, in, cfg.writer(stdout), files); err != nil {
		return err
	}
	return cfg.flush()
}

func viewFiles(cfg *ViewConfig, in io.Reader, w io.Writer, files []string) error {
	opts := cfg.encOpts(w)
	for i, file := range files {
		y, err := getDoc(in, file, cfg.Model, cfg.top())
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i > 0 && cfg.outFormat().IsYAML() {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(y, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
