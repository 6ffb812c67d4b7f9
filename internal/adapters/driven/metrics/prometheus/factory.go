package prometheus

import (
	"path/filepath"
	"sync"

	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.MetricsFactory = (*Factory)(nil)

// Factory hands out one Recorder per textfile path.
type Factory struct {
	mu        sync.Mutex
	recorders map[string]*Recorder
}

// NewFactory creates an empty Factory.
func NewFactory() *Factory {
	return &Factory{recorders: make(map[string]*Recorder)}
}

// Recorder returns the recorder for path, creating it on first use.
func (f *Factory) Recorder(path string) (driven.MetricsRecorder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := filepath.Clean(path)
	if r, ok := f.recorders[key]; ok {
		return r, nil
	}
	r, err := NewRecorder(path)
	if err != nil {
		return nil, err
	}
	f.recorders[key] = r
	return r, nil
}
