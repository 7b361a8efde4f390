package bootstrap

import (
	"sublet-booking/internal/handler/middleware"
	"sublet-booking/internal/pkg/config"
	"sublet-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
}
