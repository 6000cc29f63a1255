//go:build integration
// +build integration

package app

import (
	"sync"
	"testing"

	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence"
	"github.com/juliabase/juliabase/internal/pkg/config"
	pkgTesting "github.com/juliabase/juliabase/internal/pkg/testing"

	"github.com/stretchr/testify/require"
)

// recordingPublisher collects published events synchronously so tests can
// assert on them without running the dispatcher.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*feeds.Event
}

func (p *recordingPublisher) Publish(event *feeds.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []*feeds.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*feeds.Event{}, p.events...)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	UserService       users.UserService
	TokenService      users.TokenService
	PermissionChecker users.PermissionChecker
	TopicService      topics.TopicService
	SampleService     samples.SampleService
	MySamplesService  samples.MySamplesService
	DepositionService processes.DepositionService
	ProcessService    processes.ProcessService
	StatusService     status.StatusService

	Published *recordingPublisher
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := pkgTesting.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	published := &recordingPublisher{}

	userService, err := NewUserService(dbContext.UserRepo, dbContext.DetailsRepo, logger)
	require.NoError(t, err, "Failed to create UserService")

	authSettings := &config.AuthSettings{
		TokenSecret:   "integration-test-secret-0123456789ab",
		TokenLifetime: 60,
	}
	tokenService, err := NewTokenService(authSettings, logger)
	require.NoError(t, err, "Failed to create TokenService")

	permissionChecker, err := NewPermissionChecker(dbContext.UserRepo, dbContext.PermissionRepo, logger)
	require.NoError(t, err, "Failed to create PermissionChecker")

	topicService, err := NewTopicService(dbContext.TopicRepo, dbContext.UserRepo, published, logger)
	require.NoError(t, err, "Failed to create TopicService")

	sampleService, err := NewSampleService(
		dbContext.SampleRepo,
		dbContext.TopicRepo,
		dbContext.UserRepo,
		dbContext.ProcessRepo,
		published,
		logger,
	)
	require.NoError(t, err, "Failed to create SampleService")

	mySamplesService, err := NewMySamplesService(dbContext.SampleRepo, dbContext.DetailsRepo, userService, logger)
	require.NoError(t, err, "Failed to create MySamplesService")

	depositionService, err := NewDepositionService(
		dbContext.DepositionRepo,
		dbContext.SampleRepo,
		permissionChecker,
		published,
		logger,
	)
	require.NoError(t, err, "Failed to create DepositionService")

	processService, err := NewProcessService(
		dbContext.ProcessRepo,
		dbContext.SampleRepo,
		permissionChecker,
		published,
		logger,
	)
	require.NoError(t, err, "Failed to create ProcessService")

	statusService, err := NewStatusService(
		dbContext.StatusRepo,
		dbContext.UserRepo,
		dbContext.PermissionRepo,
		published,
		logger,
	)
	require.NoError(t, err, "Failed to create StatusService")

	return &TestServices{
		UserService:       userService,
		TokenService:      tokenService,
		PermissionChecker: permissionChecker,
		TopicService:      topicService,
		SampleService:     sampleService,
		MySamplesService:  mySamplesService,
		DepositionService: depositionService,
		ProcessService:    processService,
		StatusService:     statusService,
		Published:         published,
		DBContext:         dbContext,
	}
}
