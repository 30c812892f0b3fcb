package pathfinder

import (
	"log/slog"
	"sync"
)

// mockAccelerator implements GPUAccelerator for testing.
type mockAccelerator struct {
	name     string
	initErr  error
	closed   bool
	canAccel AcceleratedOp
	logger   *slog.Logger
	mu       sync.Mutex
}

func (m *mockAccelerator) Name() string { return m.name }

func (m *mockAccelerator) Init() error { return m.initErr }

func (m *mockAccelerator) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *mockAccelerator) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockAccelerator) CanAccelerate(op AcceleratedOp) bool {
	return m.canAccel&op != 0
}

func (m *mockAccelerator) FillPath(_ GPURenderTarget, _ *Path, _ *Paint) error {
	return ErrFallbackToCPU
}

func (m *mockAccelerator) StrokePath(_ GPURenderTarget, _ *Path, _ *Paint) error {
	return ErrFallbackToCPU
}

func (m *mockAccelerator) FillShape(_ GPURenderTarget, _ DetectedShape, _ *Paint) error {
	return ErrFallbackToCPU
}

func (m *mockAccelerator) StrokeShape(_ GPURenderTarget, _ DetectedShape, _ *Paint) error {
	return ErrFallbackToCPU
}

func (m *mockAccelerator) Flush(_ GPURenderTarget) error {
	return nil
}

// SetLogger implements loggerSetter so SetLogger/RegisterAccelerator can
// propagate the active logger to the accelerator.
func (m *mockAccelerator) SetLogger(l *slog.Logger) {
	m.mu.Lock()
	m.logger = l
	m.mu.Unlock()
}

// resetAccelerator clears the global accelerator state between tests.
func resetAccelerator() {
	accelMu.Lock()
	accel = nil
	accelMu.Unlock()
}
