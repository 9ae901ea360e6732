package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// stdinPath reads the request from standard input.
const stdinPath = "-"

// readRequest loads a chart request from path ("-" for stdin). A non-empty
// kind overrides the kind stored in the file; files holding only chart data
// need it.
func readRequest(path, kind string) (widget.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return widget.Request{}, fmt.Errorf("read %s: %w", path, err)
	}
	return parseRequest(data, kind)
}

// parseRequest accepts either a full request envelope or, when kind is
// given, bare chart data.
func parseRequest(data []byte, kind string) (widget.Request, error) {
	var req widget.Request
	if err := json.Unmarshal(data, &req); err != nil || req.Data == nil {
		if kind == "" {
			if err != nil {
				return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
			}
			return req, errors.New(errors.ErrCodeInvalidInput, `request has no "data"; pass --kind to read bare chart data`)
		}
		if !json.Valid(data) {
			return req, errors.New(errors.ErrCodeInvalidInput, "input is not valid JSON")
		}
		return widget.Request{Kind: widget.Kind(kind), Data: data}, nil
	}
	if kind != "" {
		req.Kind = widget.Kind(kind)
	}
	if req.Kind == "" {
		return req, errors.New(errors.ErrCodeInvalidInput, `request has no "kind"; pass --kind`)
	}
	return req, nil
}

// basePath derives the output base path. An empty output strips the
// extension from input; a known artifact extension is stripped from output.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "chart"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{".layout.json", ".flow.svg", ".svg", ".json", ".dot"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == stdinPath {
		_, err := c.stdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
