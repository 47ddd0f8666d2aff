package zoning

import "fmt"

// Kind identifies which of the pipeline's typed failure modes an Error
// represents. The pipeline never uses exceptions for control flow — every
// failure path returns a *Error with one of these kinds.
type Kind string

const (
	// InvalidInput indicates empty indices, mismatched shapes, an
	// empty/invalid polygon, non-positive dimensions, or a missing CRS.
	InvalidInput Kind = "INVALID_INPUT"

	// NoValidPixels indicates the Mask Builder produced zero true pixels.
	NoValidPixels Kind = "NO_VALID_PIXELS"

	// DegenerateFeature indicates the Feature Preparer could not form a
	// usable feature matrix.
	DegenerateFeature Kind = "DEGENERATE_FEATURE"

	// InvalidClusterCount indicates force_k fell outside the admissible
	// range.
	InvalidClusterCount Kind = "INVALID_CLUSTER_COUNT"

	// InsufficientSamples indicates fewer than three valid pixels (N-1 < 2)
	// were available for cluster-count selection.
	InsufficientSamples Kind = "INSUFFICIENT_SAMPLES"

	// ClusteringFailure indicates k-means could not form at least two
	// non-empty clusters for any admissible k.
	ClusteringFailure Kind = "CLUSTERING_FAILURE"

	// NoZones indicates the Polygonizer produced zero records.
	NoZones Kind = "NO_ZONES"

	// AllZonesFiltered indicates the size filter eliminated every zone.
	AllZonesFiltered Kind = "ALL_ZONES_FILTERED"

	// NoSamples indicates the Sampler emitted zero points.
	NoSamples Kind = "NO_SAMPLES"

	// Cancelled indicates cooperative cancellation was requested via the
	// run's context.Context.
	Cancelled Kind = "CANCELLED"
)

// Error is the tagged error type returned by every failing pipeline stage.
// Fields is populated with whatever structured context the stage has
// available (offending cluster count, pixel counts, and so on).
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("zoning: %s: %s", e.Kind, e.Message)
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, zoning.ErrNoValidPixels) style checks against the
// sentinels below, or errors.As to recover the *Error itself.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newErrorFields(kind Kind, fields map[string]interface{}, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Fields: fields}
}

// Sentinels usable with errors.Is(err, zoning.ErrNoValidPixels) and so on.
var (
	ErrInvalidInput         = &Error{Kind: InvalidInput}
	ErrNoValidPixels        = &Error{Kind: NoValidPixels}
	ErrDegenerateFeature    = &Error{Kind: DegenerateFeature}
	ErrInvalidClusterCount  = &Error{Kind: InvalidClusterCount}
	ErrInsufficientSamples  = &Error{Kind: InsufficientSamples}
	ErrClusteringFailure    = &Error{Kind: ClusteringFailure}
	ErrNoZones              = &Error{Kind: NoZones}
	ErrAllZonesFiltered     = &Error{Kind: AllZonesFiltered}
	ErrNoSamples            = &Error{Kind: NoSamples}
	ErrCancelled            = &Error{Kind: Cancelled}
)
