package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/regmodel"
)

// DefaultOut is the file written when no destination is given.
const DefaultOut = "out.json"

// Export converts top and writes the document to path. The file is not
// opened unless the conversion succeeds.
func Export(top regmodel.Node, path string, opts ...encode.EncodeOption) error {
	root, err := Walk(top)
	if err != nil {
		return err
	}
	return WriteFile(path, root, opts...)
}

// ExportTo converts top and writes the document to w.
func ExportTo(top regmodel.Node, w io.Writer, opts ...encode.EncodeOption) error {
	root, err := Walk(top)
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(root, buf, opts...); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// WriteFile renders root and replaces the contents of path with it.
func WriteFile(path string, root *ir.Node, opts ...encode.EncodeOption) error {
	if path == "" {
		path = DefaultOut
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(root, buf, opts...); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}
