package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	agencyUC "purser/internal/application/agency/usecases"
	billingUC "purser/internal/application/billing/usecases"
	bookingUC "purser/internal/application/booking/usecases"
	inviteUC "purser/internal/application/invite/usecases"
	userUC "purser/internal/application/user/usecases"
	"purser/internal/domain/agency"
	"purser/internal/infrastructure/auth"
	"purser/internal/infrastructure/billing"
	"purser/internal/infrastructure/config"
	"purser/internal/infrastructure/email"
	"purser/internal/infrastructure/permission"
	"purser/internal/infrastructure/ratelimit"
	"purser/internal/infrastructure/repository"
	"purser/internal/interfaces/http/handlers"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/interfaces/http/routes"
	sharedDB "purser/internal/shared/db"
	"purser/internal/shared/logger"
)

// Router wires handlers, middleware and routes onto one gin engine.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	logger         logger.Interface
	authHandler    *handlers.AuthHandler
	agencyHandler  *handlers.AgencyHandler
	billingHandler *handlers.BillingHandler
	webhookHandler *handlers.WebhookHandler
	bookingHandler *handlers.BookingHandler
	inviteHandler  *handlers.InviteHandler
	teamHandler    *handlers.TeamHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	enforcer       *permission.Enforcer
}

// NewRouter builds the full dependency graph: repositories over the given
// database, infrastructure services from configuration, use cases, and the
// handlers that expose them.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	catalog, err := agency.NewCatalog(cfg.Stripe.PriceSoloGroups, cfg.Stripe.PricePro)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan catalog: %w", err)
	}

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission enforcer: %w", err)
	}

	agencyRepo := repository.NewAgencyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	userRepo := repository.NewUserRepository(db)
	eventStore := repository.NewWebhookEventStore(db)
	txManager := sharedDB.NewTransactionManager(db)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	gateway := billing.NewStripeGateway(cfg.Stripe)
	decoder := billing.NewWebhookDecoder(cfg.Stripe.WebhookSecret)
	mailer := email.NewSMTPInviteMailer(cfg.Email, cfg.Server.AppURL)
	limiter := ratelimit.NewRedisRateLimiter(redisClient)

	loginUC := userUC.NewLoginUseCase(userRepo, hasher, jwtService, log)
	listMembersUC := userUC.NewListTeamMembersUseCase(userRepo, log)

	registerUC := agencyUC.NewRegisterAgencyUseCase(agencyRepo, userRepo, hasher, txManager, log)
	getAgencyUC := agencyUC.NewGetAgencyUseCase(agencyRepo, log)
	updateAgencyUC := agencyUC.NewUpdateAgencyUseCase(agencyRepo, log)

	checkoutUC := billingUC.NewCreateCheckoutSessionUseCase(
		agencyRepo, gateway, catalog,
		cfg.Stripe.CheckoutSuccessURL, cfg.Stripe.CheckoutCancelURL, log)
	portalUC := billingUC.NewCreatePortalSessionUseCase(agencyRepo, gateway, cfg.Server.AppURL, log)
	webhookUC := billingUC.NewHandleWebhookEventUseCase(agencyRepo, eventStore, catalog, txManager, log)

	createBookingUC := bookingUC.NewCreateBookingUseCase(bookingRepo, log)
	getBookingUC := bookingUC.NewGetBookingUseCase(bookingRepo, log)
	listBookingsUC := bookingUC.NewListBookingsUseCase(bookingRepo, log)
	addCabinUC := bookingUC.NewAddCabinUseCase(bookingRepo, txManager, log)
	setDeadlinesUC := bookingUC.NewSetCabinDeadlinesUseCase(bookingRepo, txManager, log)
	applyPaymentUC := bookingUC.NewApplyPaymentUseCase(bookingRepo, paymentRepo, txManager, log)
	attributeUC := bookingUC.NewAttributeGeneralPaymentUseCase(bookingRepo, txManager, log)
	listPaymentsUC := bookingUC.NewListPaymentsUseCase(bookingRepo, paymentRepo, log)

	inviteTTL := time.Duration(cfg.Invite.ExpiresHours) * time.Hour
	createInviteUC := inviteUC.NewCreateInviteUseCase(inviteRepo, agencyRepo, mailer, inviteTTL, log)
	acceptInviteUC := inviteUC.NewAcceptInviteUseCase(inviteRepo, userRepo, hasher, txManager, log)
	revokeInviteUC := inviteUC.NewRevokeInviteUseCase(inviteRepo, log)
	listInvitesUC := inviteUC.NewListInvitesUseCase(inviteRepo, log)

	return &Router{
		engine:         engine,
		cfg:            cfg,
		logger:         log,
		authHandler:    handlers.NewAuthHandler(loginUC, log),
		agencyHandler:  handlers.NewAgencyHandler(registerUC, getAgencyUC, updateAgencyUC, log),
		billingHandler: handlers.NewBillingHandler(checkoutUC, portalUC, log),
		webhookHandler: handlers.NewWebhookHandler(decoder, webhookUC, log),
		bookingHandler: handlers.NewBookingHandler(
			createBookingUC, getBookingUC, listBookingsUC,
			addCabinUC, setDeadlinesUC,
			applyPaymentUC, attributeUC, listPaymentsUC, log),
		inviteHandler:  handlers.NewInviteHandler(createInviteUC, acceptInviteUC, revokeInviteUC, listInvitesUC, log),
		teamHandler:    handlers.NewTeamHandler(listMembersUC, log),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter: middleware.NewRateLimiter(limiter, ratelimit.Limit{
			Requests: 30,
			Window:   time.Minute,
		}, log),
		enforcer: enforcer,
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.authHandler,
		RateLimiter: r.rateLimiter,
	})
	routes.SetupAgencyRoutes(r.engine, &routes.AgencyRouteConfig{
		AgencyHandler:  r.agencyHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
	routes.SetupBillingRoutes(r.engine, &routes.BillingRouteConfig{
		BillingHandler: r.billingHandler,
		WebhookHandler: r.webhookHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
		Enforcer:       r.enforcer,
		Logger:         r.logger,
	})
	routes.SetupBookingRoutes(r.engine, &routes.BookingRouteConfig{
		BookingHandler: r.bookingHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupInviteRoutes(r.engine, &routes.InviteRouteConfig{
		InviteHandler:  r.inviteHandler,
		TeamHandler:    r.teamHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
		Enforcer:       r.enforcer,
		Logger:         r.logger,
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
