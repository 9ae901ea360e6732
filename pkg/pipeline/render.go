package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/sink"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// Render generates output artifacts in the requested formats.
// Formats that do not apply to res.Kind fail with an UNSUPPORTED error;
// use [Options.FormatsFor] to filter them first.
func Render(ctx context.Context, res widget.Result, layoutHash string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(res, sink.WithJSONID(DocumentID(layoutHash)))
		case FormatSVG:
			data, err = sink.RenderSVG(res, svgOptions(opts)...)
		case FormatDOT, FormatFlow:
			if dot == "" {
				if dot, err = sink.ToDOT(res); err != nil {
					break
				}
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = sink.RenderFlowSVG(ctx, dot)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// DocumentID derives the JSON envelope ID from the layout hash, so the same
// geometry always carries the same ID. An empty hash yields a random ID.
func DocumentID(layoutHash string) string {
	if layoutHash == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("chartgeo:"+layoutHash)).String()
}

func svgOptions(opts Options) []sink.SVGOption {
	out := []sink.SVGOption{sink.WithSize(geom.Frame{Width: opts.Width, Height: opts.Height})}
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	return out
}

// Filename returns the output file name for a format, e.g. "chart.svg".
func Filename(base, format string) string {
	ext, ok := Extensions[format]
	if !ok {
		ext = "." + format
	}
	return fmt.Sprintf("%s%s", base, ext)
}
