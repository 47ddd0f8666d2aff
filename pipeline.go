package zoning

import "context"

// State names one stop along the pipeline's strictly linear state machine.
// Every run visits these in order; any failure aborts the run with a typed
// Error and no partial result is returned.
type State string

const (
	StateInit        State = "INIT"
	StateMasked      State = "MASKED"
	StateFeaturized  State = "FEATURIZED"
	StateClustered   State = "CLUSTERED"
	StatePolygonized State = "POLYGONIZED"
	StateFiltered    State = "FILTERED"
	StateSampled     State = "SAMPLED"
	StateDone        State = "DONE"
)

// ProgressFunc is called synchronously as the run crosses each state
// transition. It must return quickly; the run blocks on it.
type ProgressFunc func(state State)

// RunOption adjusts run-scoped behavior that is not part of Config, such
// as progress reporting.
type RunOption func(*runSettings)

type runSettings struct {
	onProgress ProgressFunc
}

// WithProgress registers a callback fired at every pipeline state
// transition, the synchronous analogue of watching an async task's
// progress channel.
func WithProgress(fn ProgressFunc) RunOption {
	return func(s *runSettings) {
		s.onProgress = fn
	}
}

// Run executes the full zoning pipeline once, end to end, and returns the
// assembled result or a typed *Error. ctx is checked at every component
// boundary; cancelling it aborts the run with a Cancelled error and no
// partial result.
func Run(ctx context.Context, indices *IndexStack, field FieldPolygon, georef RasterGeoref, crs string, cfg Config, opts ...RunOption) (*ZoningResult, error) {
	settings := &runSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	if err := validateRunInputs(indices, field, crs); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, newError(InvalidInput, "%v", err)
	}

	advance := func(s State) error {
		if settings.onProgress != nil {
			settings.onProgress(s)
		}
		return checkCancelled(ctx)
	}

	if err := advance(StateInit); err != nil {
		return nil, err
	}

	mask, err := BuildMask(field, georef, indices)
	if err != nil {
		return nil, err
	}
	if err := advance(StateMasked); err != nil {
		return nil, err
	}

	features, scan, err := PrepareFeatures(indices, mask, cfg)
	if err != nil {
		return nil, err
	}
	if err := advance(StateFeaturized); err != nil {
		return nil, err
	}

	k, err := SelectClusterCount(ctx, features, cfg)
	if err != nil {
		return nil, err
	}

	assignment, metrics, err := Cluster(features, scan, mask, k, cfg.Seed)
	if err != nil {
		return nil, err
	}
	if err := advance(StateClustered); err != nil {
		return nil, err
	}

	initialZones, err := Polygonize(assignment, georef)
	if err != nil {
		return nil, err
	}
	if err := advance(StatePolygonized); err != nil {
		return nil, err
	}

	zones, err := FilterZones(initialZones, cfg.MinZoneSizeHa)
	if err != nil {
		return nil, err
	}
	if err := advance(StateFiltered); err != nil {
		return nil, err
	}

	samples, err := SamplePoints(zones, assignment, indices, georef, cfg)
	if err != nil {
		return nil, err
	}
	if err := advance(StateSampled); err != nil {
		return nil, err
	}

	if err := ComputeStatistics(zones, assignment, indices); err != nil {
		return nil, err
	}

	if err := advance(StateDone); err != nil {
		return nil, err
	}

	return &ZoningResult{
		Zones:   zones,
		Samples: samples,
		Metrics: metrics,
		CRS:     crs,
	}, nil
}

func validateRunInputs(indices *IndexStack, field FieldPolygon, crs string) error {
	if indices == nil || len(indices.Names()) == 0 {
		return newError(InvalidInput, "indices must be non-empty")
	}
	h, w := indices.Dims()
	if h <= 0 || w <= 0 {
		return newError(InvalidInput, "raster dimensions must be positive, got (%d, %d)", h, w)
	}
	if field.Polygonal == nil {
		return newError(InvalidInput, "field polygon must not be nil")
	}
	if crs == "" {
		return newError(InvalidInput, "crs must not be empty")
	}
	return nil
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return newError(Cancelled, "run cancelled: %v", ctx.Err())
	default:
		return nil
	}
}
