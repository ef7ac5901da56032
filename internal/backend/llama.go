//go:build llama

package backend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"mintai/internal/tuning"
)

// llama.cpp session defaults before tuning clamps them.
const (
	llamaDefaultContext = 2048
	llamaDefaultBatch   = 2048
	// Fixed sampler seed keeps repeated prompts reproducible.
	llamaSamplerSeed = 1
)

// Llama is the in-process go-llama.cpp runtime.
type Llama struct{}

func NewLlama() Backend { return Llama{} }

func (Llama) Name() string      { return "llama.cpp" }
func (Llama) Available() bool   { return true }
func (Llama) Accelerated() bool { return tuning.AcceleratedBuild }

func (Llama) SessionDefaults() tuning.SessionParams {
	return tuning.SessionParams{ContextLength: llamaDefaultContext, BatchSize: llamaDefaultBatch}
}

// Load reads the model. go-llama.cpp fixes the context size at load time, so
// the model is created with the largest context a tuned session may ask for.
func (Llama) Load(path string, p tuning.LoadParams) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(tuning.MaxContextLength),
		llama.SetNBatch(tuning.MaxBatchSize),
	}
	if p.GPULayers > 0 {
		mo = append(mo,
			llama.SetGPULayers(gpuLayers(p)),
			llama.SetMainGPU(strconv.FormatUint(uint64(p.MainGPU), 10)),
		)
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaModel{model: m}, nil
}

// gpuLayers maps the all-layers sentinel onto a count llama.cpp caps at the
// model's real layer count.
func gpuLayers(p tuning.LoadParams) int {
	if p.OffloadsAll() || p.GPULayers > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(p.GPULayers)
}

type llamaModel struct {
	model *llama.LLama
}

func (m *llamaModel) NewSession(p tuning.SessionParams) (Session, error) {
	if m.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	return &llamaSession{model: m.model, params: p}, nil
}

type llamaSession struct {
	model    *llama.LLama
	params   tuning.SessionParams
	prompt   string
	ingested bool
	stream   *PushStream
}

func (s *llamaSession) Ingest(prompt string) error {
	n, _, err := s.model.TokenizeString(prompt, llama.SetThreads(s.params.BatchThreads))
	if err != nil {
		return err
	}
	if n < 0 || int(n) >= s.params.ContextLength {
		return fmt.Errorf("prompt is %d tokens, context holds %d", n, s.params.ContextLength)
	}
	s.prompt = prompt
	s.ingested = true
	return nil
}

func (s *llamaSession) Complete(maxTokens int) (TokenStream, error) {
	if !s.ingested {
		return nil, errors.New("no prompt ingested")
	}
	if s.stream != nil {
		return nil, errors.New("session already completed")
	}
	st := NewPushStream()
	s.stream = st
	s.model.SetTokenCallback(st.Push)
	po := predictOptions(s.params, maxTokens)
	go func() {
		_, err := s.model.Predict(s.prompt, po...)
		s.model.SetTokenCallback(nil)
		st.Finish(err)
	}()
	return st, nil
}

func (s *llamaSession) Close() error {
	if s.stream != nil {
		return s.stream.Close()
	}
	return nil
}

// predictOptions uses the binding's default sampler with a fixed seed.
func predictOptions(p tuning.SessionParams, maxTokens int) []llama.PredictOption {
	return []llama.PredictOption{
		llama.SetTokens(max(1, maxTokens)),
		llama.SetThreads(max(1, p.Threads)),
		llama.SetBatch(p.BatchSize),
		llama.SetTopP(llama.DefaultOptions.TopP),
		llama.SetTopK(llama.DefaultOptions.TopK),
		llama.SetTemperature(llama.DefaultOptions.Temperature),
		llama.SetPenalty(llama.DefaultOptions.Penalty),
		llama.SetSeed(llamaSamplerSeed),
	}
}
