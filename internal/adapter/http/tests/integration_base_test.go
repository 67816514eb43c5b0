//go:build integration

package tests

import (
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "github.com/mew228/Flowstate/internal/adapter/db"
	httpadapter "github.com/mew228/Flowstate/internal/adapter/http"
	"github.com/mew228/Flowstate/internal/adapter/http/handlers"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
	"github.com/mew228/Flowstate/internal/adapter/prefs"
	"github.com/mew228/Flowstate/internal/app/live"
	appservice "github.com/mew228/Flowstate/internal/app/service"
	"github.com/mew228/Flowstate/internal/config"
	"github.com/mew228/Flowstate/pkg/translator"
)

const integrationSecret = "integration-secret"

// IntegrationSuiteBase wires the full API over a throwaway sqlite database.
type IntegrationSuiteBase struct {
	suite.Suite

	DB          *sqlx.DB
	Router      *gin.Engine
	Preferences *prefs.FileStore
	Tasks       *appservice.TaskService
	Now         time.Time
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})
}

func (s *IntegrationSuiteBase) SetupTest() {
	dir := s.T().TempDir()

	db, err := dbadapter.ConnectDB(&config.Config{
		DbDriver:   config.DriverSQLite,
		SqlitePath: filepath.Join(dir, "flowstate.db"),
	})
	s.Require().NoError(err)
	s.DB = db

	s.Now = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.Now }

	s.Preferences = prefs.NewFileStore(filepath.Join(dir, "preferences"))
	taskRepository := dbadapter.NewTaskRepository(db)
	billingService := appservice.NewBillingService(s.Preferences, "https://buy.example.com/test", true)
	s.Tasks = appservice.NewTaskService(taskRepository, live.NewHub(taskRepository), billingService).WithClock(clock)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(db, s.Preferences, clock),
		Tasks:       handlers.NewTaskHandler(s.Tasks, time.UTC),
		Categories:  handlers.NewCategoryHandler(appservice.NewCategoryService(s.Preferences)),
		Preferences: handlers.NewPreferencesHandler(appservice.NewPreferencesService(s.Preferences)),
		Billing:     handlers.NewBillingHandler(billingService),
	}, httpadapter.RouteConfig{
		JWTSecret: integrationSecret,
		Billing:   billingService,
	})
	s.Router = router
}

func (s *IntegrationSuiteBase) TearDownTest() {
	if s.Tasks != nil {
		s.Tasks.Close()
	}
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
}

func (s *IntegrationSuiteBase) Bearer(userID string) string {
	claims := middleware.IdentityClaims{
		Name: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(integrationSecret))
	s.Require().NoError(err)
	return "Bearer " + signed
}
