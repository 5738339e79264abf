package storage

import (
	"context"

	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/tournaments"
)

// Repository groups data access by domain.
type Repository interface {
	Games() games.Repository
	Tournaments() tournaments.Repository

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
