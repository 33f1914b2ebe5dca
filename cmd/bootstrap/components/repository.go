package components

import (
	"pearl-desk/internal/infra/cache"
	"pearl-desk/internal/infra/mailer"
	"pearl-desk/internal/infra/repository"
	"pearl-desk/internal/pkg/config"
	"pearl-desk/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewRoomRepository,
			fx.As(new(usecase.RoomRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewAdminRepository,
			fx.As(new(usecase.AdminRepository)),
		),
		fx.Annotate(
			NewRoomCache,
			fx.As(new(usecase.RoomCache)),
		),
		fx.Annotate(
			NewMailer,
			fx.As(new(usecase.Mailer)),
		),
	),
)

func NewRoomCache(client *redis.Client, cfg config.Config) *cache.RoomCache {
	return cache.NewRoomCache(client, cfg.Redis)
}

func NewMailer(cfg config.Config) *mailer.SMTPMailer {
	return mailer.NewSMTPMailer(cfg.SMTP)
}
