//go:build integration
// +build integration

package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/config"
)

func createTestEntry(t *testing.T, ctx *TestContext, title string, timestamp time.Time, recipientIDs []string) *feeds.Entry {
	t.Helper()

	entry := &feeds.Entry{
		ID:           uuid.NewString(),
		Kind:         feeds.KindNewSample,
		Title:        title,
		OriginatorID: uuid.NewString(),
		Timestamp:    timestamp,
	}
	require.NoError(t, ctx.FeedRepo.Append(context.Background(), entry, recipientIDs))
	return entry
}

func TestFeedSqliteRepository_AppendAndListForUser(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	alice := CreateTestUser(t, ctx, "alice")
	bob := CreateTestUser(t, ctx, "bob")

	now := time.Now().UTC()
	createTestEntry(t, ctx, "older entry", now.Add(-time.Hour), []string{alice.ID, bob.ID})
	createTestEntry(t, ctx, "newer entry", now, []string{alice.ID})

	aliceEntries, err := ctx.FeedRepo.ListForUser(context.Background(), alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, aliceEntries, 2)
	assert.Equal(t, "newer entry", aliceEntries[0].Title)

	bobEntries, err := ctx.FeedRepo.ListForUser(context.Background(), bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, "older entry", bobEntries[0].Title)
}

func TestFeedSqliteRepository_Append_NoRecipientsIsNoop(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	entry := &feeds.Entry{
		ID:           uuid.NewString(),
		Kind:         feeds.KindNewSample,
		Title:        "nobody listens",
		OriginatorID: uuid.NewString(),
		Timestamp:    time.Now().UTC(),
	}
	require.NoError(t, ctx.FeedRepo.Append(context.Background(), entry, nil))

	var count int64
	require.NoError(t, ctx.DB.Model(&models.FeedEntryModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFeedSqliteRepository_Prune(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	alice := CreateTestUser(t, ctx, "alice")
	bob := CreateTestUser(t, ctx, "bob")

	now := time.Now().UTC()
	for i := 0; i < 6; i++ {
		recipients := []string{alice.ID}
		if i == 0 {
			// The oldest entry also goes to bob and must survive his absence
			// from the prune.
			recipients = append(recipients, bob.ID)
		}
		createTestEntry(t, ctx, fmt.Sprintf("entry %d", i+1), now.Add(time.Duration(i)*time.Minute), recipients)
	}

	require.NoError(t, ctx.FeedRepo.Prune(context.Background(), alice.ID, 3))

	aliceEntries, err := ctx.FeedRepo.ListForUser(context.Background(), alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, aliceEntries, 3)
	assert.Equal(t, "entry 6", aliceEntries[0].Title)

	// Entry 1 stays in the database because bob still receives it.
	bobEntries, err := ctx.FeedRepo.ListForUser(context.Background(), bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)

	// Entries 2 and 3 lost their last recipient and are gone entirely.
	var entryCount int64
	require.NoError(t, ctx.DB.Model(&models.FeedEntryModel{}).Count(&entryCount).Error)
	assert.EqualValues(t, 4, entryCount)
}
