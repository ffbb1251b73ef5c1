// Package saga tracks compensation steps for multi-call operations. When a
// later call fails, Compensate undoes the completed steps in reverse order.
// Compensation is best effort: a failed undo is logged and never changes the
// outcome already determined by the primary failure.
package saga

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CompensationFunc undoes one completed step.
type CompensationFunc func(ctx context.Context) error

type step struct {
	name string
	fn   CompensationFunc
}

// Saga accumulates compensation steps as an operation progresses.
type Saga struct {
	logger        *logrus.Logger
	correlationID string
	steps         []step
}

// New creates a saga. The correlation id ties compensation logs to the
// request that started the operation.
func New(logger *logrus.Logger, correlationID string) *Saga {
	return &Saga{logger: logger, correlationID: correlationID}
}

// AddCompensation registers the undo for a step that just completed.
func (s *Saga) AddCompensation(name string, fn CompensationFunc) {
	s.steps = append(s.steps, step{name: name, fn: fn})
}

// Compensate runs every registered undo in reverse order. Each step's
// failure is logged and the remaining steps still run.
func (s *Saga) Compensate(ctx context.Context) {
	for i := len(s.steps) - 1; i >= 0; i-- {
		st := s.steps[i]
		s.logger.WithFields(logrus.Fields{
			"correlation_id": s.correlationID,
			"step":           st.name,
			"operation":      "Compensate",
		}).Info("Running compensation step")

		if err := st.fn(ctx); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"correlation_id": s.correlationID,
				"step":           st.name,
				"operation":      "Compensate",
			}).Error("Compensation step failed")
		}
	}
	s.steps = nil
}
