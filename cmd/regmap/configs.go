package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/regmap/config"
	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	NoColor bool   `cli:"name=nocolor desc='encode without color'"`
	WireOut bool   `cli:"name=wire desc='output in compact format'"`
	Top     string `cli:"name=top desc='addrmap to export (default: last defined)'"`
	Quiet   bool   `cli:"name=q aliases=quiet desc='do not log progress'"`

	OutFormat *format.Format

	Out     string
	pending *bytes.Buffer

	File *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) file() *config.Config {
	if cfg.File == nil {
		cfg.File = config.DefaultConfig()
	}
	return cfg.File
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.file().OutFormat()
}

func (cfg *MainConfig) top() string {
	if cfg.Top != "" {
		return cfg.Top
	}
	return cfg.file().Top
}

func (cfg *MainConfig) fileEncOpts() []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeIndent(cfg.file().Indent),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.fileEncOpts()
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch {
	case cfg.Color:
		return true
	case cfg.NoColor:
		return false
	}
	switch cfg.file().Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) logf(msg string, args ...any) {
	if cfg.Quiet {
		return
	}
	theLog.Info(msg, args...)
}

type ExportConfig struct {
	*MainConfig
	Out   string `cli:"name=o desc='output file, - for stdout (default out.json)'"`
	Check bool   `cli:"name=check desc='validate the document before writing it'"`

	Export *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema to check against'"`
	Model  bool   `cli:"name=m aliases=model desc='arguments are model documents'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Patch   bool `cli:"name=patch desc='output a merge patch'"`
	Model   bool `cli:"name=m aliases=model desc='arguments are model documents'"`

	Diff *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Model bool `cli:"name=m aliases=model desc='arguments are model documents'"`

	View *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type InitConfig struct {
	*MainConfig
	Force bool `cli:"name=f desc='overwrite an existing file'"`

	Init *cli.Command
}
