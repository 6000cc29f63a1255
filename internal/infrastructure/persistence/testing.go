//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/config"
	pkgTesting "github.com/juliabase/juliabase/internal/pkg/testing"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB *gorm.DB

	SampleRepo     samples.SampleRepository
	ProcessRepo    processes.ProcessRepository
	DepositionRepo processes.DepositionRepository
	TopicRepo      topics.TopicRepository
	UserRepo       users.UserRepository
	DetailsRepo    users.UserDetailsRepository
	PermissionRepo users.PermissionRepository
	FeedRepo       feeds.FeedRepository
	StatusRepo     status.StatusRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	err = Migrate(db)
	require.NoError(t, err, "Failed to migrate schema")

	logger := pkgTesting.SetupTestLogger(t)

	sampleRepo, err := NewGormSampleRepository(db, logger)
	require.NoError(t, err, "Failed to create sample repository")

	processRepo, err := NewGormProcessRepository(db, logger)
	require.NoError(t, err, "Failed to create process repository")

	depositionRepo, err := NewGormDepositionRepository(db, logger)
	require.NoError(t, err, "Failed to create deposition repository")

	topicRepo, err := NewGormTopicRepository(db, logger)
	require.NoError(t, err, "Failed to create topic repository")

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err, "Failed to create user repository")

	detailsRepo, err := NewGormUserDetailsRepository(db, logger)
	require.NoError(t, err, "Failed to create user details repository")

	permissionRepo, err := NewGormPermissionRepository(db, logger)
	require.NoError(t, err, "Failed to create permission repository")

	feedRepo, err := NewGormFeedRepository(db, logger)
	require.NoError(t, err, "Failed to create feed repository")

	statusRepo, err := NewGormStatusRepository(db, logger)
	require.NoError(t, err, "Failed to create status repository")

	return &TestContext{
		DB:             db,
		SampleRepo:     sampleRepo,
		ProcessRepo:    processRepo,
		DepositionRepo: depositionRepo,
		TopicRepo:      topicRepo,
		UserRepo:       userRepo,
		DetailsRepo:    detailsRepo,
		PermissionRepo: permissionRepo,
		FeedRepo:       feedRepo,
		StatusRepo:     statusRepo,
	}
}

// CreateTestUser creates a user row with default values
func CreateTestUser(t *testing.T, ctx *TestContext, loginName string) *users.User {
	t.Helper()

	user := &users.User{
		ID:          uuid.NewString(),
		LoginName:   loginName,
		DisplayName: loginName,
		Email:       loginName + "@example.com",
		IsActive:    true,
		DateJoined:  time.Now().UTC(),
	}
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))
	return user
}

// CreateTestSample creates a sample row owned by the given user
func CreateTestSample(t *testing.T, ctx *TestContext, name string, responsibleID string) *samples.Sample {
	t.Helper()

	sample := &samples.Sample{
		ID:                           uuid.NewString(),
		Name:                         name,
		CurrentLocation:              "lab",
		CurrentlyResponsiblePersonID: responsibleID,
		DateTimeCreated:              time.Now().UTC(),
	}
	require.NoError(t, ctx.SampleRepo.Create(context.Background(), sample))
	return sample
}
