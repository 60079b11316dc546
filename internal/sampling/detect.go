package sampling

import (
	"context"
	"fmt"

	"flowplan/internal/domain"
	"flowplan/internal/infer"
)

// Limits bound how much of a file one detection reads.
type Limits struct {
	MaxBytes   int64
	MaxRecords int
}

// DefaultLimits reads at most 1 MiB and 100 records per sample.
func DefaultLimits() Limits {
	return Limits{MaxBytes: 1 << 20, MaxRecords: infer.DefaultSampleSize}
}

// Detector fetches bounded samples and infers file-source schemas from them.
type Detector struct {
	fetchers *Registry
	limits   Limits
}

// NewDetector builds a detector over a fetcher registry. Zero limit members
// fall back to the defaults.
func NewDetector(fetchers *Registry, limits Limits) *Detector {
	def := DefaultLimits()
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = def.MaxBytes
	}
	if limits.MaxRecords <= 0 {
		limits.MaxRecords = def.MaxRecords
	}
	return &Detector{fetchers: fetchers, limits: limits}
}

// DetectSchema samples the file a URI names and infers its record schema.
// format may be empty, in which case the path's extension decides.
func (d *Detector) DetectSchema(ctx context.Context, uri, format string) (domain.Schema, error) {
	data, err := d.fetchers.Fetch(ctx, uri, d.limits.MaxBytes)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatForPath(uri)
	}
	records, err := DecodeRecords(data, format, d.limits.MaxRecords)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", uri, err)
	}
	return infer.SchemaFromData(records, d.limits.MaxRecords), nil
}
