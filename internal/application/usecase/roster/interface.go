package roster

import (
	"context"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

type BuildUseCase interface {
	Execute(ctx context.Context, input BuildInput) ([]entity.FriendSnapshot, error)
}
