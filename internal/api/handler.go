package api

import (
	"time"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/db"
	"github.com/conectarapak/conectar/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	authCookieName      = "conectar_session"
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	defaultFlowTTL      = 30 * time.Minute
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Handler struct {
	db           *gorm.DB
	repositories *db.Repositories
	authService  *services.AuthService
	library      *services.ResearchLibrary
	generator    ai.Generator
	secretKey    []byte
	cookieSecure bool
	location     *time.Location
	flows        *flowStore
}

func NewHandler(database *gorm.DB, generator ai.Generator, secretKey string, cookieSecure bool, location *time.Location, flowTTL time.Duration) *Handler {
	if location == nil {
		location = time.UTC
	}
	if flowTTL <= 0 {
		flowTTL = defaultFlowTTL
	}
	if generator == nil {
		generator = ai.Disabled{}
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users),
		library:      services.NewResearchLibrary(repositories.Research, generator),
		generator:    generator,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		location:     location,
		flows:        newFlowStore(flowTTL),
	}
}

// Library exposes the research library for wiring and tests.
func (handler *Handler) Library() *services.ResearchLibrary {
	return handler.library
}
