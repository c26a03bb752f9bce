package main

import (
	"fmt"
	"io"

	"github.com/signadot/regmap/schema"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.loadFile(); err != nil {
		return err
	}
	bad, err := runCheck(cfg, cc.In, cfg.writer(cc.Out), args)
	if err != nil {
		return err
	}
	if err := cfg.flush(); err != nil {
		return err
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// runCheck reports on each document and returns the number which failed.
func runCheck(cfg *CheckConfig, in io.Reader, w io.Writer, files []string) (int, error) {
	name := cfg.Schema
	if name == "" {
		name = schema.Default
	}
	s := schema.Lookup(name)
	if s == nil {
		return 0, fmt.Errorf("%w: no schema named %q", cli.ErrUsage, name)
	}
	if len(files) == 0 {
		files = []string{"-"}
	}
	bad := 0
	for _, f := range files {
		doc, err := getDoc(in, f, cfg.Model, cfg.top())
		if err != nil {
			return bad, fmt.Errorf("error decoding %s: %w", f, err)
		}
		if err := s.Validate(doc); err != nil {
			bad++
			for _, msg := range schema.Errors(err) {
				fmt.Fprintf(w, "%s: %s\n", f, msg)
			}
			continue
		}
		fmt.Fprintf(w, "%s: ok\n", f)
	}
	return bad, nil
}
