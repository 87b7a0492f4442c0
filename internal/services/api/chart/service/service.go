// Package service contains chart workflows
package service

import (
	"context"

	"astrolabe/internal/core/birthtime"
	"astrolabe/internal/core/zodiac"
	"astrolabe/internal/ephem"
	"astrolabe/internal/services/api/chart/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for charts
type Service interface {
	Natal(ctx context.Context, in domain.OnboardingInput) (domain.NatalChart, error)
	Signs() []zodiac.Sign
}

// Svc implements the Service interface
type Svc struct {
	engine *ephem.Engine
}

// New creates a new chart service around the shared engine
func New(engine *ephem.Engine) *Svc {
	if engine == nil {
		panic("chart.Service requires a non nil Engine")
	}
	return &Svc{engine: engine}
}

// Natal normalizes the onboarding input and computes ascendant and
// midheaven. Calculation failures come back as Success:false with a
// diagnostic, not as a Go error: the caller shows a retry prompt, the
// transport layer keeps a 200
func (s *Svc) Natal(ctx context.Context, in domain.OnboardingInput) (domain.NatalChart, error) {
	birth := birthtime.ToBirthData(birthtime.Input{
		Date:           in.BirthDate,
		TimeDescriptor: in.BirthTime,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	})

	res := s.engine.Calculate(ctx, birth)

	chart := domain.NatalChart{
		ChartID:    uuid.NewString(),
		BirthDate:  birth.Date,
		BirthTime:  birth.Time,
		BirthPlace: in.BirthPlace,
		Success:    res.Success,
		Error:      res.Error,
	}
	if res.Success {
		chart.Ascendant = &domain.Angle{Degrees: res.Ascendant, Position: zodiac.FromLongitude(res.Ascendant)}
		chart.MC = &domain.Angle{Degrees: res.MC, Position: zodiac.FromLongitude(res.MC)}
	}
	return chart, nil
}

// Signs returns the fixed zodiac sign table
func (s *Svc) Signs() []zodiac.Sign { return zodiac.Signs() }
