package main

import (
	"fmt"
	"io"

	"github.com/signadot/regmap/export"
	"github.com/signadot/regmap/regmodel"
	"github.com/signadot/regmap/schema"

	"github.com/scott-cotton/cli"
)

func exportCmd(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	return runExport(cfg, cc.In, cc.Out, args)
}

func runExport(cfg *ExportConfig, in io.Reader, stdout io.Writer, files []string) error {
	if len(files) == 0 {
		files = cfg.file().Files
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: export requires at least one model file", cli.ErrUsage)
	}
	top, err := elaborateFiles(in, cfg.top(), files...)
	if err != nil {
		return err
	}
	out := cfg.Out
	if out == "" {
		out = cfg.MainConfig.Out
	}
	if out == "" {
		out = cfg.file().Out
	}
	if cfg.Check {
		if err := checkModel(top); err != nil {
			return err
		}
	}
	if out == "-" {
		return export.ExportTo(top, stdout, cfg.encOpts(stdout)...)
	}
	if err := export.Export(top, out, cfg.fileEncOpts()...); err != nil {
		return err
	}
	cfg.logf("exported", "top", top.InstName(), "out", out, "files", len(files))
	return nil
}

func checkModel(top regmodel.Node) error {
	doc, err := export.Walk(top)
	if err != nil {
		return err
	}
	s := schema.Lookup(schema.Default)
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", top.InstName(), err)
	}
	return nil
}
