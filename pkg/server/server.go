// Package server exposes the splitting pipeline over HTTP: upload a
// model, receive a zip of printable pieces. It is a thin boundary over
// the splitter core; all geometry semantics live below it.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/printforge/stlsplit/pkg/archive"
	"github.com/printforge/stlsplit/pkg/fragstore"
	"github.com/printforge/stlsplit/pkg/geom"
	"github.com/printforge/stlsplit/pkg/splitter"
	"github.com/printforge/stlsplit/pkg/stlcodec"
)

// Server handles split requests. Each request is processed in a single
// synchronous pass; fragment files are job-scoped and deleted before
// the handler returns.
type Server struct {
	kernel    geom.Kernel
	log       *zap.Logger
	workDir   string // fragment scratch space, "" = OS temp
	maxUpload int64  // bytes
}

// defaultMaxUpload caps request bodies when no limit is configured.
const defaultMaxUpload = 256 << 20

// New creates a Server on top of a mesh-capable kernel. A maxUpload
// of zero or below falls back to the default limit rather than
// rejecting every request.
func New(k geom.Kernel, log *zap.Logger, workDir string, maxUpload int64) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Server{
		kernel:    k,
		log:       log,
		workDir:   workDir,
		maxUpload: maxUpload,
	}
}

// ServeMux returns the HTTP routes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.HandleFunc("/split", s.splitHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

// splitHandler accepts a multipart POST with a "model" STL file and
// form parameters xsplit, ysplit, max_x, max_y, flip. The response is
// a zip archive with one entry per fragment.
func (s *Server) splitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("model")
	if err != nil {
		http.Error(w, "missing model file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stem := modelStem(header.Filename)

	mesh, err := stlcodec.Decode(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := splitter.SplitMesh(s.kernel, mesh, opts)
	if err != nil {
		s.log.Warn("split failed",
			zap.String("model", header.Filename),
			zap.Error(err),
		)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	store, err := fragstore.NewStore(s.workDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer store.Cleanup()

	files, err := store.WriteFragments(stem, result.Fragments)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.Info("model split",
		zap.String("model", header.Filename),
		zap.Int("xsplit", result.Splits[0]),
		zap.Int("ysplit", result.Splits[1]),
		zap.Int("fragments", len(result.Fragments)),
	)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", archive.ZipName(stem)))
	w.Header().Set("X-Stlsplit-Splits",
		fmt.Sprintf("%dx%d", result.Splits[0], result.Splits[1]))
	w.Header().Set("X-Stlsplit-Fragments", strconv.Itoa(len(result.Fragments)))
	w.Header().Set("X-Stlsplit-Dimensions",
		fmt.Sprintf("%.2fx%.2fx%.2f",
			result.Dimensions[0], result.Dimensions[1], result.Dimensions[2]))

	if err := archive.WriteZip(w, files); err != nil {
		// Headers are already out; all we can do is log.
		s.log.Error("writing zip response", zap.Error(err))
	}
}

// parseOptions reads the splitting parameters from form values.
func parseOptions(r *http.Request) (splitter.Options, error) {
	var opts splitter.Options
	var err error

	if opts.XSplit, err = formInt(r, "xsplit"); err != nil {
		return opts, err
	}
	if opts.YSplit, err = formInt(r, "ysplit"); err != nil {
		return opts, err
	}
	if opts.MaxX, err = formFloat(r, "max_x"); err != nil {
		return opts, err
	}
	if opts.MaxY, err = formFloat(r, "max_y"); err != nil {
		return opts, err
	}
	opts.Flip = r.FormValue("flip") == "true" || r.FormValue("flip") == "1"
	return opts, nil
}

func formInt(r *http.Request, key string) (int, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", key, err)
	}
	return v, nil
}

func formFloat(r *http.Request, key string) (*float64, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", key, err)
	}
	return &v, nil
}

// modelStem strips the directory and extension from an uploaded file
// name, falling back to "model" for anonymous uploads.
func modelStem(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "model"
	}
	return stem
}

// statusFor maps splitter errors to HTTP status codes. Parameter and
// input-mesh problems are client errors; anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, splitter.ErrInvalidChunkSize),
		errors.Is(err, splitter.ErrInvalidSplitCount):
		return http.StatusBadRequest
	case errors.Is(err, geom.ErrInvalidMesh):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
