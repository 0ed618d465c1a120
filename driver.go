package gridsearch

import (
	"context"
	"time"
)

// Driver advances a Stepper at a fixed pace. Pacing is only a delay between
// steps; the algorithms never look at it.
type Driver struct {
	stepper  *Stepper
	pacing   time.Duration
	maxSteps int
	steps    int
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithMaxSteps bounds the number of steps a Driver will take. Zero means
// no bound.
func WithMaxSteps(maxSteps int) DriverOption {
	return func(d *Driver) { d.maxSteps = maxSteps }
}

// NewDriver wraps stepper with the given pacing.
func NewDriver(stepper *Stepper, pacing time.Duration, options ...DriverOption) *Driver {
	d := &Driver{stepper: stepper, pacing: max(pacing, 0)}
	for _, o := range options {
		o(d)
	}
	return d
}

// Stepper returns the driven stepper.
func (d *Driver) Stepper() *Stepper { return d.stepper }

// Advance takes one step without waiting.
func (d *Driver) Advance() (StepSnapshot, error) {
	if d.maxSteps > 0 && d.steps >= d.maxSteps && !d.stepper.Done() {
		d.stepper.Cancel()
		snapshot, _ := d.stepper.Step()
		return snapshot, ErrStepBudgetExceeded
	}
	d.steps++
	return d.stepper.Step()
}

// Run steps until the search ends, calling onStep after every step and
// sleeping for the pacing delay in between. Cancelling ctx cancels the
// search at the next suspension point.
func (d *Driver) Run(ctx context.Context, onStep func(StepSnapshot)) (Result, error) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			d.stepper.Cancel()
			return d.stepper.Result(), err
		}
		snapshot, err := d.Advance()
		if onStep != nil {
			onStep(snapshot)
		}
		if err != nil {
			return d.stepper.Result(), err
		}
		if snapshot.Done {
			return d.stepper.Result(), nil
		}
		if d.pacing == 0 {
			continue
		}

		if timer == nil {
			timer = time.NewTimer(d.pacing)
		} else {
			timer.Reset(d.pacing)
		}
		select {
		case <-ctx.Done():
			d.stepper.Cancel()
			return d.stepper.Result(), ctx.Err()
		case <-timer.C:
		}
	}
}

// Abort cancels the driven search. It is safe to call more than once.
func (d *Driver) Abort() { d.stepper.Cancel() }
