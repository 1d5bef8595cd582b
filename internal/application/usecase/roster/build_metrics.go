package roster

import (
	"context"
	"time"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/metrics"
)

type BuildRosterMetricsDecorator struct {
	Next    BuildUseCase
	Metrics metrics.Metrics
}

func (d *BuildRosterMetricsDecorator) Execute(ctx context.Context, input BuildInput) ([]entity.FriendSnapshot, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("BuildRoster", err == nil, time.Since(start))
	return output, err
}
