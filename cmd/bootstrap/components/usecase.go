package components

import (
	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/pkg/clock"
	"pearl-desk/internal/pkg/config"
	"pearl-desk/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewNightlyRate,
		usecase.NewAuthUseCase,
		usecase.NewRoomUseCase,
		usecase.NewBookingUseCase,
		usecase.NewReportUseCase,
	),
)

func NewNightlyRate(cfg config.Config) booking.Money {
	return booking.NewMoney(cfg.Billing.NightlyRateCents)
}
