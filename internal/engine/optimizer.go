package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/cutlist/internal/model"
)

// ErrTooManyPieces is returned when a job expands to more pieces than the
// optimizer is configured to handle in one run.
var ErrTooManyPieces = errors.New("too many pieces")

// Settings configures the optimizer boundary around the packer.
type Settings struct {
	MaxPieces int // 0 disables the limit
}

// SettingsFromConfig derives optimizer settings from the app config.
func SettingsFromConfig(cfg model.AppConfig) Settings {
	return Settings{MaxPieces: cfg.MaxPieces}
}

// Optimizer validates jobs and runs the guillotine packer on them.
type Optimizer struct {
	Settings Settings
}

func New(settings Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize validates the job, expands quantities, and packs the pieces on
// the job's stock sheet.
func (o *Optimizer) Optimize(job model.Job) (model.Layout, error) {
	if err := o.check(job); err != nil {
		return model.Layout{}, err
	}

	placed, unplaced, remnants := packWithRemnants(job.Stock, model.ExpandCuts(job.Cuts), job.Kerf)

	return model.Layout{
		Stock:    job.Stock,
		Kerf:     job.Kerf,
		Placed:   placed,
		Unplaced: unplaced,
		Remnants: remnants,
	}, nil
}

// Compare runs CompareKerfs on the job after the same checks as Optimize.
// Every kerf must be a finite non-negative number.
func (o *Optimizer) Compare(job model.Job, kerfs []float64) ([]KerfComparison, error) {
	if err := o.check(job); err != nil {
		return nil, err
	}
	for _, k := range kerfs {
		if !(k >= 0) || math.IsInf(k, 1) {
			return nil, fmt.Errorf("%w: kerf must be a finite non-negative number, got %g", model.ErrInvalidJob, k)
		}
	}
	return CompareKerfs(job.Stock, job.Cuts, kerfs), nil
}

func (o *Optimizer) check(job model.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if n := job.PieceCount(); o.Settings.MaxPieces > 0 && n > o.Settings.MaxPieces {
		return fmt.Errorf("%w: %d pieces exceeds limit of %d", ErrTooManyPieces, n, o.Settings.MaxPieces)
	}
	return nil
}
