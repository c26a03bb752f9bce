package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/regmap/export"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/model"
	"github.com/signadot/regmap/parse"
	"github.com/signadot/regmap/regmodel"
)

func readInput(in io.Reader, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = in
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getObjFile(in io.Reader, path string) (*ir.Node, error) {
	d, err := readInput(in, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, parse.Name(path))
}

// elaborateFiles compiles paths and elaborates top, applying param
// overrides from the environment.
func elaborateFiles(in io.Reader, top string, paths ...string) (*regmodel.Addrmap, error) {
	units := make([]*model.Unit, 0, len(paths))
	for _, p := range paths {
		d, err := readInput(in, p)
		if err != nil {
			return nil, err
		}
		u, err := model.Compile(p, d)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	env, err := model.LoadEnv()
	if err != nil {
		return nil, err
	}
	return model.ElaborateEnv(units, top, env)
}

func loadModel(in io.Reader, top string, paths ...string) (*ir.Node, error) {
	m, err := elaborateFiles(in, top, paths...)
	if err != nil {
		return nil, err
	}
	return export.Walk(m)
}

// getDoc reads a document, or builds one from a model document.
func getDoc(in io.Reader, path string, isModel bool, top string) (*ir.Node, error) {
	if isModel {
		return loadModel(in, top, path)
	}
	return getObjFile(in, path)
}
