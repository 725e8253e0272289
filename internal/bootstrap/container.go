package bootstrap

import (
	"context"
	"time"

	"notemark-be/internal/config"
	"notemark-be/internal/controller"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/pkg/mailer"
	"notemark-be/internal/repository/memory"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/internal/service"
	pktNats "notemark-be/pkg/nats"
	"notemark-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const verificationEmailTopic = "verification_emails"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	NoteController     controller.INoteController
	BookmarkController controller.IBookmarkController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sysLogger.Warn("bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}

	// Signup abuse guards. The throttle spaces out resends per email, the
	// limiter caps how many codes one address can request per window.
	resendThrottle := memory.NewResendThrottle(60 * time.Second)
	codeLimiter := ratelimit.NewRedisLimiter(rdb, "signup_code", 10, time.Hour)

	// 3. Services
	publisherService := service.NewPublisherService(verificationEmailTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		verificationEmailTopic,
		emailService,
	)

	authService := service.NewAuthService(
		uowFactory,
		publisherService,
		resendThrottle,
		codeLimiter,
		natsPub,
	)
	noteService := service.NewNoteService(uowFactory, natsPub)
	bookmarkService := service.NewBookmarkService(uowFactory, natsPub)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		NoteController:     controller.NewNoteController(noteService),
		BookmarkController: controller.NewBookmarkController(bookmarkService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
