package report

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned for DisplayOptions that cannot produce a report.
var ErrInvalidOptions = errors.New("invalid display options")

// Mode selects which report is built.
type Mode int

const (
	ModeShowData Mode = iota
	ModeShowMetadata
	ModeListTables
)

func (m Mode) String() string {
	switch m {
	case ModeShowData:
		return "data"
	case ModeShowMetadata:
		return "metadata"
	case ModeListTables:
		return "table list"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DisplayOptions controls a single report. Zero limits mean no limit.
// Descending, RowLimit and FieldValueLimit only affect ModeShowData.
type DisplayOptions struct {
	Mode            Mode
	Table           string
	Descending      bool
	RowLimit        int
	FieldValueLimit int
}

// Validate checks that o describes a report that can be built.
func (o DisplayOptions) Validate() error {
	switch o.Mode {
	case ModeListTables:
	case ModeShowData, ModeShowMetadata:
		if o.Table == "" {
			return fmt.Errorf("%w: %s report needs a table name", ErrInvalidOptions, o.Mode)
		}
	default:
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidOptions, o.Mode)
	}
	if o.RowLimit < 0 {
		return fmt.Errorf("%w: row limit %d is negative", ErrInvalidOptions, o.RowLimit)
	}
	if o.FieldValueLimit < 0 {
		return fmt.Errorf("%w: field value limit %d is negative", ErrInvalidOptions, o.FieldValueLimit)
	}
	return nil
}
