package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/backmassage/img2mp4/internal/config"
	"github.com/backmassage/img2mp4/internal/logging"
	"github.com/backmassage/img2mp4/internal/pipeline"
)

// ErrBusy is returned by Start while a run is in progress.
var ErrBusy = errors.New("an encoding run is already in progress")

const eventBuffer = 8

// Params are the user-supplied values for one run.
type Params struct {
	InputDir   string
	OutputPath string
	FPS        int
	Quality    int
}

// Session runs at most one encode at a time and tracks its state.
// All methods are safe for concurrent use.
type Session struct {
	cfg *config.Config
	log *logging.Logger

	mu      sync.Mutex
	state   State
	runID   string
	frames  int
	percent int
	output  string
	err     error
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns an idle session.
func New(cfg *config.Config, log *logging.Logger) *Session {
	return &Session{cfg: cfg, log: log}
}

// Plan validates p and scans the input tree, returning the request a run
// would execute. It has no side effects beyond directory reads and does not
// change the session state.
func (s *Session) Plan(p Params) (pipeline.Request, error) {
	if err := validateParams(p); err != nil {
		return pipeline.Request{}, err
	}
	return scan(p)
}

func validateParams(p Params) error {
	if err := config.ValidateEncoding(p.FPS, p.Quality); err != nil {
		return fmt.Errorf("%w: %v", pipeline.ErrInvalidRequest, err)
	}
	if p.InputDir == "" {
		return fmt.Errorf("%w: input directory is required", pipeline.ErrInvalidRequest)
	}
	if p.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", pipeline.ErrInvalidRequest)
	}
	return nil
}

func scan(p Params) (pipeline.Request, error) {
	images, err := pipeline.Discover(p.InputDir)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("scan %s: %w", p.InputDir, err)
	}
	if len(images) == 0 {
		return pipeline.Request{}, fmt.Errorf("%w in %s", pipeline.ErrNoImages, p.InputDir)
	}
	return pipeline.Request{
		Images:     images,
		OutputPath: p.OutputPath,
		FPS:        p.FPS,
		Quality:    p.Quality,
	}, nil
}

// Start validates and scans synchronously, then launches the encode in a
// background goroutine. Validation and scan errors are returned directly and
// no run is started. On success the returned channel delivers progress
// events, then exactly one terminal event, and is then closed.
func (s *Session) Start(parent context.Context, p Params) (<-chan Event, error) {
	s.mu.Lock()
	if s.state.Running() {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	prev := s.state
	s.state = Validating
	s.percent, s.output, s.err = 0, "", nil
	s.mu.Unlock()

	fail := func(err error) (<-chan Event, error) {
		s.setState(prev)
		return nil, err
	}
	if err := validateParams(p); err != nil {
		return fail(err)
	}
	s.setState(Scanning)
	req, err := scan(p)
	if err != nil {
		return fail(err)
	}

	runID := uuid.New().String()
	req.RunID = runID
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	events := make(chan Event, eventBuffer)

	s.mu.Lock()
	s.state = Encoding
	s.runID = runID
	s.frames = len(req.Images)
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.log.Info("Run %s: %d images -> %s (%d fps, CRF %d)",
		shortID(runID), len(req.Images), req.OutputPath, req.FPS, req.Quality)

	go s.worker(ctx, cancel, req, events, done)
	return events, nil
}

func (s *Session) worker(ctx context.Context, cancel context.CancelFunc, req pipeline.Request, events chan<- Event, done chan<- struct{}) {
	defer close(done)
	defer cancel()
	defer close(events)

	send := func(e Event) {
		e.RunID = req.RunID
		select {
		case events <- e:
		case <-ctx.Done():
			// Foreground may have stopped reading; terminal events still
			// get one non-blocking attempt.
			if e.Terminal() {
				select {
				case events <- e:
				default:
				}
			}
		}
	}

	out, err := pipeline.Run(ctx, s.cfg, s.log, req, func(pct int) {
		s.mu.Lock()
		s.percent = pct
		s.mu.Unlock()
		send(Event{Kind: EventProgress, Percent: pct})
	})

	s.mu.Lock()
	if err != nil {
		s.state, s.err = Failed, err
	} else {
		s.state, s.output = Succeeded, out
	}
	s.mu.Unlock()

	if err != nil {
		send(Event{Kind: EventFailed, Err: err})
		return
	}
	send(Event{Kind: EventSucceeded, OutputPath: out})
}

// Shutdown cancels the active run, if any, and blocks until its worker has
// returned: ffmpeg is terminated and the manifest removed. Safe to call
// repeatedly and when idle.
func (s *Session) Shutdown() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Wait blocks until the active run, if any, has finished.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:   s.state,
		RunID:   s.runID,
		Frames:  s.frames,
		Percent: s.percent,
		Output:  s.output,
		Err:     s.err,
	}
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
