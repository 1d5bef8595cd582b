package roster

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

// BuildRosterBreakerDecorator guards roster assembly with a circuit
// breaker. When either backing store is flapping, the breaker opens and the
// engine simply keeps serving its last known-good result instead of
// hammering a failing dependency on every refresh.
type BuildRosterBreakerDecorator struct {
	Next    BuildUseCase
	Breaker *gobreaker.CircuitBreaker
}

func NewBuildRosterBreakerDecorator(next BuildUseCase, settings gobreaker.Settings) *BuildRosterBreakerDecorator {
	return &BuildRosterBreakerDecorator{
		Next:    next,
		Breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (d *BuildRosterBreakerDecorator) Execute(ctx context.Context, input BuildInput) ([]entity.FriendSnapshot, error) {
	out, err := d.Breaker.Execute(func() (interface{}, error) {
		return d.Next.Execute(ctx, input)
	})
	if err != nil {
		return nil, err
	}
	return out.([]entity.FriendSnapshot), nil
}
