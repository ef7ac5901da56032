package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mintai/internal/download"
	"mintai/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *manager.Manager implements it.
type Service interface {
	Generate(ctx context.Context, prompt, modelPath string) (string, error)
	Status(modelPath string) types.ModelStatus
	ListModels() (types.ModelsResponse, error)
	Runtime() types.RuntimeStatus
	Ready() bool
	DownloadModel(ctx context.Context, progress download.ProgressFunc) (string, error)
	RemoveModel() error
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Post("/llm/generate", h.generate)
	r.Get("/model/status", h.status)
	r.Post("/model/download", h.download)
	r.Delete("/model", h.remove)
	r.Get("/models", h.models)
	r.Get("/runtime", h.runtime)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not loaded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// generate godoc
// @Summary      Generate text with the local model
// @Description  Loads the model on first use, then runs one prompt. The reply is capped at 256 tokens and 8000 characters.
// @Tags         llm
// @Accept       json
// @Produce      json
// @Param        request  body      types.GenerateRequest  true  "Prompt and optional model path"
// @Success      200      {object}  types.GenerateResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      503      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /llm/generate [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	// Content-Type check
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var modelPath string
	if req.ModelPath != nil {
		modelPath = strings.TrimSpace(*req.ModelPath)
	}

	lvl := requestLogLevel(r)
	start := time.Now()
	if lvl >= LevelInfo {
		reqLog(logger().Info(), r).Str("model_path", modelPath).Int("prompt_chars", len(req.Prompt)).Msg("generate start")
	}
	if lvl >= LevelDebug {
		reqLog(logger().Debug(), r).Str("prompt", req.Prompt).Msg("generate prompt")
	}

	// Join server base context with request context so shutdown stops waiters too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	if waitTimeout > 0 {
		var cancelT context.CancelFunc
		ctx, cancelT = context.WithTimeout(ctx, waitTimeout)
		defer cancelT()
	}

	text, err := h.svc.Generate(ctx, req.Prompt, modelPath)
	if err != nil {
		// Client went away; nobody reads the answer.
		if r.Context().Err() != nil {
			return
		}
		status, kind := statusFor(err)
		countGenerateError(kind)
		if lvl >= LevelError {
			reqLog(logger().Warn(), r).Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("generate end")
		}
		writeJSONError(w, status, err.Error())
		return
	}
	if lvl >= LevelInfo {
		reqLog(logger().Info(), r).Int("status", http.StatusOK).Int("chars", len(text)).Dur("dur", time.Since(start)).Msg("generate end")
	}
	writeJSON(w, http.StatusOK, types.GenerateResponse{Text: text})
}

// status godoc
// @Summary      Model file status
// @Description  Resolves the model path and reports whether the file exists. Never loads the model.
// @Tags         model
// @Produce      json
// @Param        path  query     string  false  "Explicit model path"
// @Success      200   {object}  types.ModelStatus
// @Router       /model/status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status(strings.TrimSpace(r.URL.Query().Get("path"))))
}

// models godoc
// @Summary      List model files
// @Tags         model
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /models [get]
func (h *handlers) models(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListModels()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// runtime godoc
// @Summary      Runtime status
// @Tags         model
// @Produce      json
// @Success      200  {object}  types.RuntimeStatus
// @Router       /runtime [get]
func (h *handlers) runtime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Runtime())
}

// download godoc
// @Summary      Download the default model
// @Description  Streams NDJSON progress lines, then a final line with done=true and the path.
// @Tags         model
// @Produce      application/x-ndjson
// @Success      200  {object}  types.DownloadProgress
// @Failure      502  {object}  types.ErrorResponse
// @Router       /model/download [post]
func (h *handlers) download(w http.ResponseWriter, r *http.Request) {
	var out io.Writer = w
	if requestLogLevel(r) >= LevelDebug {
		out = io.MultiWriter(w, &loggingLineWriter{prefix: "download>"})
	}
	flush := func() {}
	if f, ok := w.(http.Flusher); ok {
		flush = f.Flush
	}
	enc := json.NewEncoder(out)
	started := false
	emit := func(p types.DownloadProgress) {
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		_ = enc.Encode(p)
		flush()
	}

	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	path, err := h.svc.DownloadModel(ctx, func(loaded, total int64) {
		if total < 0 {
			total = 0
		}
		emit(types.DownloadProgress{Loaded: loaded, Total: total})
	})
	if err != nil {
		reqLog(logger().Warn(), r).Err(err).Msg("download failed")
		if !started {
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		emit(types.DownloadProgress{Error: err.Error()})
		return
	}
	emit(types.DownloadProgress{Done: true, Path: path})
}

// remove godoc
// @Summary      Remove the default model file
// @Tags         model
// @Success      204
// @Failure      500  {object}  types.ErrorResponse
// @Router       /model [delete]
func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveModel(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
