package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/buildinfo"
	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/export"
	pkgio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

type apiError struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type validateResponse struct {
	Valid     bool      `json:"valid"`
	Rows      int       `json:"rows,omitempty"`
	Columns   int       `json:"columns,omitempty"`
	Pieces    int       `json:"pieces,omitempty"`
	Edges     int       `json:"edges"`
	Available []string  `json:"availableEdgeIds,omitempty"`
	FellBack  bool      `json:"fellBack,omitempty"`
	Hash      string    `json:"hash,omitempty"`
	Error     *apiError `json:"error,omitempty"`
}

// handleValidate answers 200 for both valid and invalid configs; only transport
// and server problems are reported as errors.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	invalid := func(err error) {
		if errors.HTTPStatus(err) != http.StatusBadRequest {
			writeError(w, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, validateResponse{
			Error: &apiError{Code: errors.GetCode(err), Message: errors.UserMessage(err)},
		})
	}

	cfg, err := pkgio.ReadJSON(r.Body)
	if err != nil {
		invalid(err)
		return
	}
	if _, err := grid.Generate(cfg); err != nil {
		invalid(err)
		return
	}
	hash, err := pipeline.ConfigHash(cfg)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	available, fellBack := cfg.Available()
	ids := make([]string, len(available))
	for i, e := range available {
		ids[i] = e.ID
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:     true,
		Rows:      cfg.Rows,
		Columns:   cfg.Columns,
		Pieces:    cfg.Rows * cfg.Columns,
		Edges:     len(cfg.EdgeConfigs),
		Available: ids,
		FellBack:  fellBack,
		Hash:      hash,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	q := query{v: r.URL.Query()}
	opts := s.settings.RenderOptions()
	opts.Type = q.getString("type", pipeline.TypePuzzle)
	format := q.getString("format", pipeline.FormatSVG)
	opts.Formats = []string{format}
	opts.EdgeID = q.getString("edge", "")
	opts.PieceSize = q.getFloat("pieceSize", opts.PieceSize)
	opts.Labels = q.getBool("labels", false)
	opts.Refresh = q.getBool("refresh", false)
	opts.Texture, opts.TextureKey = req.texture, req.textureKey
	if q.err != nil {
		writeError(w, s.logger, q.err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), req.cfg, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handlePieces(w http.ResponseWriter, r *http.Request) {
	cfg, err := pkgio.ReadJSON(r.Body)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	q := query{v: r.URL.Query()}
	size := q.getFloat("size", s.settings.Render.PieceSize)
	if q.err != nil {
		writeError(w, s.logger, q.err)
		return
	}

	pieces, hit, err := s.runner.PiecesWithCacheInfo(r.Context(), cfg, size)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, pieces)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	q := query{v: r.URL.Query()}
	opts := s.settings.ExportOptions()
	opts.UnitSize = q.getInt("unitSize", opts.UnitSize)
	if q.v.Has("margin") {
		margin := q.getFloat("margin", 0)
		opts.Margin = &margin
	}
	opts.AutoMargin = q.getBool("autoMargin", opts.AutoMargin)
	opts.Workers = q.getInt("workers", opts.Workers)
	opts.Rasterizer = q.getString("rasterizer", opts.Rasterizer)
	opts.Refresh = q.getBool("refresh", false)
	opts.Texture, opts.TextureKey = req.texture, req.textureKey
	if q.err != nil {
		writeError(w, s.logger, q.err)
		return
	}

	res, err := s.runner.Export(r.Context(), req.cfg, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	var buf bytes.Buffer
	if err := res.WriteZip(&buf); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInternal, err, "write archive"))
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/zip")
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, export.ArchiveName(req.cfg.Seed)))
	h.Set("X-Puzzle-Id", res.Manifest.PuzzleID)
	h.Set("X-Failed-Pieces", strconv.Itoa(res.Failed))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// request is a decoded preview or export body.
type request struct {
	cfg        grid.Config
	texture    image.Image
	textureKey string
}

// readRequest decodes either a bare config JSON body or a multipart form with a
// "config" part and an optional "image" part.
func readRequest(r *http.Request) (request, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		cfg, err := pkgio.ReadJSON(r.Body)
		if err != nil {
			return request{}, err
		}
		return request{cfg: cfg}, nil
	}

	if err := r.ParseMultipartForm(MaxBodySize); err != nil {
		return request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse form")
	}
	data, err := formPart(r, "config")
	if err != nil {
		return request{}, err
	}
	if data == nil {
		return request{}, errors.New(errors.ErrCodeInvalidInput, "form has no config part")
	}
	cfg, err := pkgio.DecodeJSON(data)
	if err != nil {
		return request{}, err
	}

	req := request{cfg: cfg}
	img, err := formPart(r, "image")
	if err != nil {
		return request{}, err
	}
	if img != nil {
		tex, err := sink.DecodeTexture(bytes.NewReader(img))
		if err != nil {
			return request{}, err
		}
		req.texture, req.textureKey = tex, cache.Hash(img)
	}
	return req, nil
}

// formPart returns the named file or value of a parsed multipart form, or nil when
// the part is absent.
func formPart(r *http.Request, name string) ([]byte, error) {
	if f, _, err := r.FormFile(name); err == nil {
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
		}
		return data, nil
	}
	if v := r.FormValue(name); v != "" {
		return []byte(v), nil
	}
	return nil, nil
}

// query parses URL parameters and keeps the first error.
type query struct {
	v   url.Values
	err error
}

func (q *query) getString(name, def string) string {
	if v := q.v.Get(name); v != "" {
		return v
	}
	return def
}

func (q *query) getFloat(name string, def float64) float64 {
	v := q.v.Get(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, v, "a number")
		return def
	}
	return f
}

func (q *query) getInt(name string, def int) int {
	v := q.v.Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v, "an integer")
		return def
	}
	return n
}

func (q *query) getBool(name string, def bool) bool {
	v := q.v.Get(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, v, "a boolean")
		return def
	}
	return b
}

func (q *query) fail(name, value, want string) {
	if q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "query parameter %s=%q is not %s", name, value, want)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// writeJSON encodes v before writing the header so an encoding failure still
// produces an error response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(apiError{Code: errors.ErrCodeInternal, Message: "encode response"})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	switch {
	case status == http.StatusRequestEntityTooLarge:
		code, msg = errors.ErrCodeInvalidInput, "request body too large"
	case code == "":
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, apiError{Code: code, Message: msg})
}
