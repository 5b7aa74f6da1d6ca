package pipeline

import (
	"errors"
	"fmt"

	"github.com/backmassage/img2mp4/internal/config"
)

// Error kinds returned by Run. Validation errors are returned before any
// filesystem or process work; the rest describe a run that was started.
var (
	ErrInvalidRequest = errors.New("invalid encoding request")
	ErrNoImages       = errors.New("no image files found")
	ErrEncoderFailed  = errors.New("ffmpeg failed")
	ErrOutputMissing  = errors.New("output file was not created")
	ErrInterrupted    = errors.New("encoding interrupted")
)

// IsValidation reports whether err is a user-correctable request problem
// (bad parameters or an empty image set) as opposed to a runtime failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrNoImages)
}

// Request is one encoding job. It drives exactly one run.
type Request struct {
	Images     []string // Ordered image set.
	OutputPath string
	FPS        int
	Quality    int    // CRF, 18..28.
	RunID      string // Names the manifest; generated when empty.
}

// Validate checks the request without touching the filesystem.
func (r *Request) Validate() error {
	if err := config.ValidateEncoding(r.FPS, r.Quality); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if r.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidRequest)
	}
	if len(r.Images) == 0 {
		return ErrNoImages
	}
	return nil
}
