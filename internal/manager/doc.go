// Package manager owns the single local model of the process and serializes
// generation against it. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: ModelCache interface and load outcome types.
//   - errors.go: error types and helpers (IsModelNotFound, IsLoadFailed, ...).
//   - load.go: the accelerated-then-processor load decision.
//   - acquire.go: path check and initialize-or-fetch of the cached model.
//   - admission.go: Handle, the exclusive gate around the loaded model.
//   - generate.go: one generation request from session open to collected text.
//   - status_report.go: model status, runtime status and readiness.
//   - sanity.go: preflight checks run before serving.
//   - ops.go: background preload, model download and removal.
//   - events.go, eventpub_memory.go: lifecycle events.
//   - metrics.go: Prometheus collectors.
//
// The first successful load is kept for the life of the process. A later
// request naming a different model path still gets that model; switching
// models requires a restart.
package manager
