// ABOUTME: Tests for the playback controller
// ABOUTME: Tests state transitions, start failures and sample publication
package playback

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// fakeOutput records writes and can fail Open
type fakeOutput struct {
	mu       sync.Mutex
	openErr  error
	writeErr error
	openGate chan struct{} // Open blocks until closed
	entered  chan struct{} // signaled when a gated Open begins
	opened   int
	rate     int
	channels int
	written  []float64
	volume   int
	closed   bool
}

func (o *fakeOutput) Open(sampleRate, channels int) error {
	if o.openGate != nil {
		o.entered <- struct{}{}
		<-o.openGate
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.openErr != nil {
		return o.openErr
	}
	o.opened++
	o.rate = sampleRate
	o.channels = channels
	return nil
}

func (o *fakeOutput) Write(samples []float64) error {
	time.Sleep(time.Millisecond)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.writeErr != nil {
		return o.writeErr
	}
	if o.closed {
		return errors.New("closed")
	}
	o.written = append(o.written, samples...)
	return nil
}

func (o *fakeOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *fakeOutput) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = volume
}

func (o *fakeOutput) GetVolume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// sliceSource plays a fixed set of samples then reports EOF
type sliceSource struct {
	samples []float64
	pos     int
	err     error
}

func (s *sliceSource) Read(buf []float64) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := copy(buf, s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}

func (s *sliceSource) SampleRate() int            { return 8000 }
func (s *sliceSource) Metadata() (string, string) { return "slice", "test" }
func (s *sliceSource) Close() error               { return nil }

func newController(t *testing.T, src Source, out *fakeOutput, onError func(error)) *Controller {
	t.Helper()
	ctrl, err := NewController(ControllerConfig{
		Source:       src,
		Output:       out,
		ChunkSamples: 4,
		OnError:      onError,
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(func() { ctrl.Close() })
	return ctrl
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewControllerValidation(t *testing.T) {
	if _, err := NewController(ControllerConfig{Output: &fakeOutput{}}); err == nil {
		t.Error("expected error without source")
	}
	if _, err := NewController(ControllerConfig{Source: NewToneSource(440, 8000)}); err == nil {
		t.Error("expected error without output")
	}
}

func TestNewControllerDefaults(t *testing.T) {
	ctrl := newController(t, NewToneSource(440, 8000), &fakeOutput{}, nil)

	if ctrl.State() != StateStopped {
		t.Errorf("expected stopped, got %v", ctrl.State())
	}
	if ctrl.Volume() != 100 {
		t.Errorf("expected volume 100, got %d", ctrl.Volume())
	}
	if _, ok := ctrl.Sample(); ok {
		t.Error("expected no sample before Start")
	}
}

func TestNewControllerVolume(t *testing.T) {
	tests := []struct {
		name   string
		volume *int
		want   int
	}{
		{"unset", nil, 100},
		{"muted", intPtr(0), 0},
		{"half", intPtr(50), 50},
		{"clamped", intPtr(150), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, err := NewController(ControllerConfig{
				Source: NewToneSource(440, 8000),
				Output: &fakeOutput{},
				Volume: tt.volume,
			})
			if err != nil {
				t.Fatalf("NewController: %v", err)
			}
			defer ctrl.Close()

			if ctrl.Volume() != tt.want {
				t.Errorf("expected volume %d, got %d", tt.want, ctrl.Volume())
			}
		})
	}
}

func TestMutedVolumeAppliedOnStart(t *testing.T) {
	out := &fakeOutput{volume: -1}
	ctrl, err := NewController(ControllerConfig{
		Source: NewToneSource(440, 8000),
		Output: out,
		Volume: intPtr(0),
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	defer ctrl.Close()

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if out.GetVolume() != 0 {
		t.Errorf("expected output muted, got %d", out.GetVolume())
	}
}

func TestAccessorsDoNotWaitForOpen(t *testing.T) {
	out := &fakeOutput{openGate: make(chan struct{}), entered: make(chan struct{}, 1)}
	ctrl := newController(t, NewToneSource(440, 8000), out, nil)

	started := make(chan error, 1)
	go func() { started <- ctrl.Start(context.Background()) }()
	<-out.entered

	done := make(chan struct{})
	go func() {
		defer close(done)
		if ctrl.State() != StateStopped {
			t.Errorf("expected stopped while opening, got %v", ctrl.State())
		}
		ctrl.SetVolume(30)
		_ = ctrl.Volume()
		// A second Start while the first is opening is a no-op
		if err := ctrl.Start(context.Background()); err != nil {
			t.Errorf("second Start: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("accessors blocked while the output was opening")
	}

	close(out.openGate)
	if err := <-started; err != nil {
		t.Fatalf("Start: %v", err)
	}
	if ctrl.State() != StatePlaying {
		t.Errorf("expected playing, got %v", ctrl.State())
	}
	if out.GetVolume() != 30 {
		t.Errorf("expected volume set during open to apply, got %d", out.GetVolume())
	}

	out.mu.Lock()
	opened := out.opened
	out.mu.Unlock()
	if opened != 1 {
		t.Errorf("expected output opened once, got %d", opened)
	}
}

func TestCloseDuringOpenReleasesOutput(t *testing.T) {
	out := &fakeOutput{openGate: make(chan struct{}), entered: make(chan struct{}, 1)}
	ctrl, err := NewController(ControllerConfig{
		Source: NewToneSource(440, 8000),
		Output: out,
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	started := make(chan error, 1)
	go func() { started <- ctrl.Start(context.Background()) }()
	<-out.entered

	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	close(out.openGate)

	err = <-started
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected *EngineError, got %v", err)
	}
	if ctrl.State() != StateStopped {
		t.Errorf("expected stopped, got %v", ctrl.State())
	}

	out.mu.Lock()
	defer out.mu.Unlock()
	if !out.closed {
		t.Error("expected output opened during Close to be closed")
	}
}

func TestStartPublishesSamples(t *testing.T) {
	out := &fakeOutput{}
	src := &sliceSource{samples: []float64{0.1, 0.2, 0.3, 0.4, 0.5, -0.6}}
	ctrl := newController(t, src, out, nil)

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if ctrl.State() != StatePlaying {
		t.Fatalf("expected playing, got %v", ctrl.State())
	}

	waitFor(t, "source end", func() bool { return ctrl.Stats().Ended })

	v, ok := ctrl.Sample()
	if !ok {
		t.Fatal("expected a sample after playback")
	}
	if v != -0.6 {
		t.Errorf("expected last sample -0.6, got %v", v)
	}

	stats := ctrl.Stats()
	if stats.Samples != 6 || stats.Chunks != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	out.mu.Lock()
	defer out.mu.Unlock()
	if out.rate != 8000 || out.channels != 1 {
		t.Errorf("output opened as %dHz %dch", out.rate, out.channels)
	}
	if out.volume != 100 {
		t.Errorf("expected volume applied on start, got %d", out.volume)
	}
	if len(out.written) != 6 {
		t.Errorf("expected 6 samples written, got %d", len(out.written))
	}
}

func TestStartTwiceIsNoOp(t *testing.T) {
	out := &fakeOutput{}
	ctrl := newController(t, NewToneSource(440, 8000), out, nil)

	for i := 0; i < 2; i++ {
		if err := ctrl.Start(context.Background()); err != nil {
			t.Fatalf("Start #%d: %v", i+1, err)
		}
	}

	out.mu.Lock()
	opened := out.opened
	out.mu.Unlock()
	if opened != 1 {
		t.Errorf("expected output opened once, got %d", opened)
	}
}

func TestStartFailureIsEngineError(t *testing.T) {
	cause := errors.New("device busy")
	ctrl := newController(t, NewToneSource(440, 8000), &fakeOutput{openErr: cause}, nil)

	err := ctrl.Start(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected *EngineError, got %T", err)
	}
	if engineErr.Op != "open output" {
		t.Errorf("expected op 'open output', got %q", engineErr.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap cause")
	}

	if ctrl.State() != StateStopped {
		t.Errorf("expected stopped after failure, got %v", ctrl.State())
	}
	if _, ok := ctrl.Sample(); ok {
		t.Error("expected no sample after failed start")
	}
}

func TestStartCanceledContext(t *testing.T) {
	out := &fakeOutput{}
	ctrl := newController(t, NewToneSource(440, 8000), out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctrl.Start(ctx)
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected *EngineError, got %v", err)
	}
	if out.opened != 0 {
		t.Error("output should not be opened with a canceled context")
	}
}

func TestPauseUnsupported(t *testing.T) {
	ctrl := newController(t, NewToneSource(440, 8000), &fakeOutput{}, nil)
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := ctrl.Pause(); !errors.Is(err, ErrPauseUnsupported) {
		t.Errorf("expected ErrPauseUnsupported, got %v", err)
	}
	if ctrl.State() != StatePlaying {
		t.Errorf("pause changed state to %v", ctrl.State())
	}
}

func TestSourceErrorReported(t *testing.T) {
	errCh := make(chan error, 1)
	src := &sliceSource{err: errors.New("corrupt frame")}
	ctrl := newController(t, src, &fakeOutput{}, func(err error) { errCh <- err })

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, src.err) {
			t.Errorf("expected source error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnError not called")
	}
}

func TestWriteErrorReported(t *testing.T) {
	errCh := make(chan error, 1)
	out := &fakeOutput{writeErr: errors.New("underrun")}
	ctrl := newController(t, NewToneSource(440, 8000), out, func(err error) { errCh <- err })

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, out.writeErr) {
			t.Errorf("expected write error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnError not called")
	}
}

func TestSetVolume(t *testing.T) {
	out := &fakeOutput{}
	ctrl := newController(t, NewToneSource(440, 8000), out, nil)

	ctrl.SetVolume(40)
	if ctrl.Volume() != 40 {
		t.Errorf("expected 40, got %d", ctrl.Volume())
	}
	if out.GetVolume() != 0 {
		t.Error("volume should not reach output before start")
	}

	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if out.GetVolume() != 40 {
		t.Errorf("expected output volume 40, got %d", out.GetVolume())
	}

	ctrl.SetVolume(150)
	if ctrl.Volume() != 100 || out.GetVolume() != 100 {
		t.Errorf("expected clamped volume 100, got %d/%d", ctrl.Volume(), out.GetVolume())
	}
}

func TestCloseStopsPump(t *testing.T) {
	out := &fakeOutput{}
	ctrl, err := NewController(ControllerConfig{Source: NewToneSource(440, 8000), Output: out})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitFor(t, "first sample", func() bool { _, ok := ctrl.Sample(); return ok })

	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-ctrl.done:
	default:
		t.Error("pump still running after Close")
	}

	if err := ctrl.Start(context.Background()); err != nil {
		t.Errorf("Start after Close while playing should be a no-op, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	if StateStopped.String() != "stopped" || StatePlaying.String() != "playing" {
		t.Error("unexpected state names")
	}
}

func intPtr(v int) *int { return &v }
