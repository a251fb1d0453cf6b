package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/uwcirg/waverify-auth/domain"
	"github.com/uwcirg/waverify-auth/internal/config"
	"github.com/uwcirg/waverify-auth/internal/infrastructure/auth"
	"github.com/uwcirg/waverify-auth/internal/infrastructure/database"
	"github.com/uwcirg/waverify-auth/internal/infrastructure/notifications"
	"github.com/uwcirg/waverify-auth/internal/infrastructure/repositories"
	"github.com/uwcirg/waverify-auth/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	CredRepo    domain.CredentialRepository
	AttemptRepo domain.AttemptRepository

	// Services
	TokenSvc        domain.TokenService
	PinSvc          domain.PinService
	DemographicSvc  domain.DemographicService
	SessionSvc      domain.SessionTokenService
	NotificationSvc domain.NotificationService
	FlowSvc         domain.FlowService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CredRepo = repositories.NewCredentialRepository(c.DB)
	c.AttemptRepo = repositories.NewAttemptRepository(c.RedisClient, c.Config.AttemptTTL)
}

func (c *Container) initServices() {
	c.TokenSvc = services.NewTokenService(c.UserRepo, services.LinkConfig{
		BaseURL:     c.Config.LinkBaseURL,
		Realm:       c.Config.LinkRealm,
		ClientID:    c.Config.LinkClientID,
		RedirectURI: c.Config.LinkRedirectURI,
	})
	c.PinSvc = services.NewPinService(c.CredRepo)
	c.DemographicSvc = services.NewDemographicService(c.Config.VerificationURL, c.Config.VerificationTimeout)
	c.SessionSvc = auth.NewSessionTokenService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.SessionTTL)
	c.NotificationSvc = notifications.NewEmailService(notifications.SMTPConfig{
		Host:     c.Config.EmailHost,
		Port:     c.Config.EmailPort,
		User:     c.Config.EmailUser,
		Password: c.Config.EmailPassword,
		From:     c.Config.EmailFrom,
	})

	c.FlowSvc = services.NewFlowService(
		c.UserRepo,
		c.AttemptRepo,
		c.TokenSvc,
		c.PinSvc,
		c.DemographicSvc,
		c.NotificationSvc,
		c.SessionSvc,
		c.Config.SessionTTL,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
