package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartgeo/pkg/buildinfo"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/pipeline"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// chartBody is the request body shared by the chart endpoints.
type chartBody struct {
	Data      json.RawMessage `json:"data"`
	Options   json.RawMessage `json:"options,omitempty"`
	Refresh   bool            `json:"refresh,omitempty"`
	Point     *geom.Point     `json:"point,omitempty"`
	Tolerance float64         `json:"tolerance,omitempty"`
}

type kindInfo struct {
	Kind    widget.Kind `json:"kind"`
	Aliases []string    `json:"aliases,omitempty"`
}

type hitResponse struct {
	Hit     bool        `json:"hit"`
	Element *widget.Hit `json:"element,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	reg := s.runner.Widgets
	kinds := make([]kindInfo, 0, len(reg.Kinds()))
	for _, k := range reg.Kinds() {
		kinds = append(kinds, kindInfo{Kind: k, Aliases: reg.Aliases(k)})
	}
	writeJSON(w, http.StatusOK, kinds)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, body, err := decodeChart(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.execute(w, r, req, pipeline.Options{Formats: []string{pipeline.FormatJSON}, Refresh: body.Refresh})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, body, err := decodeChart(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Title:   q.Get("title"),
		Refresh: body.Refresh,
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if opts.Width, err = floatParam(q.Get("width"), "width"); err != nil {
		writeError(w, err)
		return
	}
	if opts.Height, err = floatParam(q.Get("height"), "height"); err != nil {
		writeError(w, err)
		return
	}
	s.execute(w, r, req, opts)
}

// execute runs the pipeline for a single format and writes the artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, req widget.Request, opts pipeline.Options) {
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), req, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Layout-Hash", res.LayoutHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	req, body, err := decodeChart(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if body.Point == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "point is required"))
		return
	}

	h, ok, err := s.runner.Hit(r.Context(), req, widget.Interaction{Point: *body.Point, Tolerance: body.Tolerance})
	if err != nil {
		writeError(w, err)
		return
	}
	resp := hitResponse{Hit: ok}
	if ok {
		resp.Element = &h
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeChart(r *http.Request) (widget.Request, chartBody, error) {
	var body chartBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return widget.Request{}, body, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
		}
		return widget.Request{}, body, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(body.Data) == 0 {
		return widget.Request{}, body, errors.New(errors.ErrCodeInvalidInput, "data is required")
	}
	req := widget.Request{
		Kind:    widget.Kind(chi.URLParam(r, "kind")),
		Data:    body.Data,
		Options: body.Options,
	}
	return req, body, nil
}

func floatParam(s, name string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number", name)
	}
	return v, nil
}
