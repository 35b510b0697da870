package bootstrap

import (
	"context"
	"log"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/controller"
	"mortgage-connect-be/internal/handler"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/pkg/mailer"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/internal/repository/implementation"
	"mortgage-connect-be/internal/repository/memory"
	redisRepo "mortgage-connect-be/internal/repository/redis"
	"mortgage-connect-be/internal/service"
	"mortgage-connect-be/internal/websocket"
	"mortgage-connect-be/pkg/crm/gohighlevel"
	pktNats "mortgage-connect-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FormController  controller.IFormController
	LeadController  controller.ILeadController
	BrandController controller.IBrandController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService service.INotificationService

	// WebSockets
	ConversationHandler *handler.ConversationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

// NewContainer wires every dependency. db may be nil, in which case leads are
// kept in memory. NATS and Redis are optional the same way.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)
	registry := catalog.MustBuild()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	c := &Container{}

	// 3. Storage
	var leadRepo contract.LeadRepository
	if db != nil {
		leadRepo = implementation.NewLeadRepository(db)
	} else {
		log.Println("[WARN] No database configured, leads are kept in memory")
		leadRepo = memory.NewLeadRepository()
	}
	sessionRepo := memory.NewFormSessionRepository(cfg.Form.SessionTTL)
	dedupRepo := newDedupRepository(cfg.App.RedisURL, c)

	// 4. NATS
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 5. Services
	crmClient := gohighlevel.NewClient(gohighlevel.Config{
		APIKey:     cfg.CRM.APIKey,
		LocationID: cfg.CRM.LocationID,
		PipelineID: cfg.CRM.PipelineID,
		StageID:    cfg.CRM.StageID,
		BaseURL:    cfg.CRM.BaseURL,
		Timeout:    cfg.CRM.Timeout,
	})
	if !crmClient.Configured() {
		log.Println("[WARN] GHL_API_KEY not set, leads will be stored for manual follow-up")
	}

	publisherService := service.NewPublisherService(cfg.Form.LeadTopicName, pubSub)
	leadService := service.NewLeadService(
		leadRepo,
		dedupRepo,
		crmClient,
		publisherService,
		cfg.Brand,
		cfg.Form.DedupWindow,
		sysLogger,
	)

	// A nil *Publisher must not become a non-nil interface.
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}
	var eventSubscriber service.EventSubscriber
	if natsSub != nil {
		eventSubscriber = natsSub
	}

	notificationService := service.NewNotificationService(eventSubscriber, emailService, cfg.Brand, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Form.LeadTopicName,
		eventPublisher,
		notificationService,
		sysLogger,
	)

	wizardService := service.NewWizardService(
		registry,
		sessionRepo,
		leadService,
		cfg.Brand,
		cfg.Form.AutoAdvance,
		sysLogger,
	)
	conversationService := service.NewConversationService(
		registry,
		sessionRepo,
		leadService,
		cfg.Brand,
		service.ConversationPacing{RevealDelay: cfg.Form.RevealDelay, SubmitPause: cfg.Form.SubmitPause},
		chatLogger,
	)
	adminService := service.NewAdminService(leadService, sysLogger)

	// 6. WebSocket Hub
	wsHub := websocket.NewHub(chatLogger)

	c.FormController = controller.NewFormController(wizardService, conversationService, cfg.IsDevelopment())
	c.LeadController = controller.NewLeadController(leadService, sysLogger)
	c.BrandController = controller.NewBrandController(cfg.Brand)
	c.AdminController = controller.NewAdminController(adminService, cfg.Auth.JwtSecret)
	c.ConsumerService = consumerService
	c.NotificationService = notificationService
	c.ConversationHandler = handler.NewConversationHandler(conversationService, registry, wsHub, chatLogger)
	c.WebSocketHub = wsHub
	c.closers = append(c.closers, func() { pubSub.Close() }, func() { sysLogger.Sync(); chatLogger.Sync() })
	return c
}

// Close releases broker connections and flushes the loggers.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newDedupRepository(redisURL string, c *Container) contract.LeadDedupRepository {
	if redisURL == "" {
		return memory.NewLeadDedupRepository()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: redisURL,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Lead dedup falls back to memory", err)
		rdb.Close()
		return memory.NewLeadDedupRepository()
	}

	c.closers = append(c.closers, func() { rdb.Close() })
	return redisRepo.NewLeadDedupRepository(rdb)
}
