package app

import (
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Omar96MJ/sanad-sub001/config"
	"github.com/Omar96MJ/sanad-sub001/internal/service/appointment"
	"github.com/Omar96MJ/sanad-sub001/internal/service/auth"
	"github.com/Omar96MJ/sanad-sub001/internal/service/availability"
	"github.com/Omar96MJ/sanad-sub001/internal/service/conversation"
	svcfile "github.com/Omar96MJ/sanad-sub001/internal/service/file"
	"github.com/Omar96MJ/sanad-sub001/internal/service/notification"
	"github.com/Omar96MJ/sanad-sub001/internal/service/psychtest"
	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
	"github.com/Omar96MJ/sanad-sub001/pkg/logs"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
	s3pkg "github.com/Omar96MJ/sanad-sub001/pkg/s3"
)

// ServiceModule provides the stores and application services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideLogger,
		ProvidePasetoManager,

		store.NewProfileStore,
		store.NewAvailabilityStore,
		store.NewAppointmentStore,
		store.NewConversationStore,
		store.NewNotificationStore,
		store.NewPsychTestStore,

		ProvideAuthService,
		ProvideUserService,
		ProvideAvailabilityService,
		ProvideAppointmentService,
		ProvideConversationService,
		ProvideNotificationService,
		ProvidePsychTestService,
		ProvideFileService,
	),
)

func ProvideLogger(cfg *config.Config) *slog.Logger {
	return logs.New(cfg)
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.FromCentralConfig(cfg)
}

func ProvideAuthService(profiles *store.ProfileStore, rdb *redis.Client, paseto *pasetotoken.Manager, authz authorize.IAuthorization, logger *slog.Logger) auth.Service {
	return auth.New(profiles, rdb, paseto, authz, logger)
}

func ProvideUserService(profiles *store.ProfileStore) user.Service {
	return user.New(profiles)
}

func ProvideAvailabilityService(slots *store.AvailabilityStore, profiles *store.ProfileStore, logger *slog.Logger) availability.Service {
	return availability.New(slots, profiles, logger)
}

func ProvideAppointmentService(appts *store.AppointmentStore, profiles *store.ProfileStore, nc *nats.Conn, logger *slog.Logger) appointment.Service {
	return appointment.New(appts, profiles, nc, logger)
}

func ProvideConversationService(convs *store.ConversationStore, nc *nats.Conn) conversation.Service {
	return conversation.New(convs, nc)
}

func ProvideNotificationService(notifs *store.NotificationStore) notification.Service {
	return notification.New(notifs)
}

func ProvidePsychTestService(tests *store.PsychTestStore) psychtest.Service {
	return psychtest.New(tests)
}

func ProvideFileService(s3 *s3pkg.Client) svcfile.Service {
	return svcfile.New(s3)
}
