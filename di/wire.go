//go:build wireinject
// +build wireinject

package di

import (
	"atithi/config"
	"atithi/infras/jwt"
	"atithi/infras/mailer"
	"atithi/infras/otel"
	"atithi/infras/payu"
	"atithi/infras/postgres"
	"atithi/infras/redis"
	"atithi/infras/s3"
	"atithi/internal/notification"
	"atithi/permissions"
	"atithi/shared/cache"
	"atithi/transport/http"
	"atithi/transport/http/middleware"
	"atithi/transport/http/router"

	accommodationRepository "atithi/internal/domains/accommodation/repository"
	accommodationService "atithi/internal/domains/accommodation/service"
	authService "atithi/internal/domains/auth/service"
	blogRepository "atithi/internal/domains/blog/repository"
	blogService "atithi/internal/domains/blog/service"
	bookingRepository "atithi/internal/domains/booking/repository"
	bookingService "atithi/internal/domains/booking/service"
	bookingSweeper "atithi/internal/domains/booking/sweeper"
	userRepository "atithi/internal/domains/user/repository"
	userService "atithi/internal/domains/user/service"

	accommodationHandler "atithi/internal/handlers/accommodation"
	authHandler "atithi/internal/handlers/auth"
	blogHandler "atithi/internal/handlers/blog"
	bookingHandler "atithi/internal/handlers/booking"
	userHandler "atithi/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	mailer.New,
	payu.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notification.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	bookingSweeper.New,
)

var accommodationDomain = wire.NewSet(
	accommodationRepository.New,
	accommodationService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var blogDomain = wire.NewSet(
	blogRepository.New,
	blogService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	accommodationDomain,
	userDomain,
	authDomain,
	blogDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	accommodationHandler.New,
	userHandler.New,
	authHandler.New,
	blogHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
