package outline

import (
	"fmt"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// Options configures Build.
type Options struct {
	// Step is the arc length spacing used by Sample.
	Step float64
	// Dense caps the raw sample count before ordering. Zero means no cap.
	Dense int
	// Points is the size of the final outline.
	Points int
	// Size, when positive, rescales the outline with Fit.
	Size float64
}

func (o Options) Validate() error {
	if !(o.Step > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidStep, o.Step)
	}
	if o.Dense < 0 {
		return fmt.Errorf("dense cap: %w: got %d", ErrInvalidCount, o.Dense)
	}
	if o.Points < 0 {
		return fmt.Errorf("outline points: %w: got %d", ErrInvalidCount, o.Points)
	}
	return nil
}

// Build runs the point pipeline: sample the paths, cap the dense samples,
// order them into a closed tour, trim to the final size and optionally fit.
// An empty or zero-length input yields an empty outline, not an error.
func Build[P Path](paths []P, opts Options) ([]geom.Point, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	points, err := Sample(paths, opts.Step)
	if err != nil {
		return nil, err
	}
	if opts.Dense > 0 {
		points = Trim(points, opts.Dense)
	}
	points = OrderCircular(points)
	points = Trim(points, opts.Points)
	if opts.Size > 0 {
		points = Fit(points, opts.Size)
	}
	return points, nil
}
