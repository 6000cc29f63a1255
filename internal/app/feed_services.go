package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gorillafeeds "github.com/gorilla/feeds"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/config"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// feedService implements the FeedService interface. Publishing goes through
// the dispatcher; Run consumes the subscription and does the fan-out, so a
// mutating request never waits on feed persistence.
type feedService struct {
	dispatcher  *feeds.Dispatcher
	feedRepo    feeds.FeedRepository
	detailsRepo users.UserDetailsRepository
	topicRepo   topics.TopicRepository
	userService users.UserService
	settings    *config.FeedSettings
	logger      logger.Logger
}

// NewFeedService creates a new feedService instance
func NewFeedService(
	dispatcher *feeds.Dispatcher,
	feedRepo feeds.FeedRepository,
	detailsRepo users.UserDetailsRepository,
	topicRepo topics.TopicRepository,
	userService users.UserService,
	settings *config.FeedSettings,
	logger logger.Logger,
) (feeds.FeedService, error) {
	return &feedService{
		dispatcher:  dispatcher,
		feedRepo:    feedRepo,
		detailsRepo: detailsRepo,
		topicRepo:   topicRepo,
		userService: userService,
		settings:    settings,
		logger:      logger,
	}, nil
}

func (s *feedService) Publish(event *feeds.Event) {
	s.dispatcher.Publish(event)
}

// Run consumes dispatched events until the context is canceled. Meant to be
// started as a goroutine next to the dispatcher.
func (s *feedService) Run(ctx context.Context) {
	eventCh := s.dispatcher.Subscribe()
	defer s.dispatcher.Unsubscribe(eventCh)

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-eventCh:
			if err := s.process(ctx, event); err != nil {
				s.logger.Error(fmt.Sprintf("Feed fan-out for %s event failed: %v", event.Kind, err))
			}
		}
	}
}

// process resolves the event's recipients and stores one entry attached to
// all of them, then trims each recipient's feed to the configured cap.
func (s *feedService) process(ctx context.Context, event *feeds.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	recipientIDs, err := s.resolveRecipients(ctx, event)
	if err != nil {
		return err
	}
	if len(recipientIDs) == 0 {
		return nil
	}

	entry := &feeds.Entry{
		ID:           uuid.New().String(),
		Kind:         event.Kind,
		Title:        event.Title,
		Summary:      event.Summary,
		Link:         event.Link,
		OriginatorID: event.OriginatorID,
		Timestamp:    event.Timestamp,
	}
	if err := s.feedRepo.Append(ctx, entry, recipientIDs); err != nil {
		return err
	}

	for _, recipientID := range recipientIDs {
		if err := s.feedRepo.Prune(ctx, recipientID, s.settings.MaxEntriesPerUser); err != nil {
			return err
		}
	}

	s.logger.Info(fmt.Sprintf("Delivered %s feed entry to %d users", event.Kind, len(recipientIDs)))
	return nil
}

// resolveRecipients collects watchers of the touched samples, members of the
// topic, and explicitly named users. The originator is dropped; nobody needs
// news about their own change.
func (s *feedService) resolveRecipients(ctx context.Context, event *feeds.Event) ([]string, error) {
	seen := map[string]struct{}{}
	var recipientIDs []string
	add := func(userID string) {
		if userID == event.OriginatorID {
			return
		}
		if _, ok := seen[userID]; ok {
			return
		}
		seen[userID] = struct{}{}
		recipientIDs = append(recipientIDs, userID)
	}

	for _, userID := range event.RecipientIDs {
		add(userID)
	}

	if len(event.SampleIDs) > 0 {
		watcherIDs, err := s.detailsRepo.WatchersOf(ctx, event.SampleIDs)
		if err != nil {
			return nil, err
		}
		for _, userID := range watcherIDs {
			add(userID)
		}
	}

	if event.TopicID != "" {
		memberIDs, err := s.topicRepo.MemberIDs(ctx, event.TopicID)
		if err != nil {
			return nil, err
		}
		for _, userID := range memberIDs {
			add(userID)
		}
	}

	return recipientIDs, nil
}

func (s *feedService) AtomForUser(ctx context.Context, loginName, token string) (string, error) {
	user, err := s.userService.GetByLogin(ctx, loginName)
	if err != nil {
		return "", err
	}

	details, err := s.userService.Details(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if details.FeedToken == "" || details.FeedToken != token {
		return "", fmt.Errorf("feed token mismatch for %s: %w", loginName, common.ErrAuthFailed)
	}

	entries, err := s.feedRepo.ListForUser(ctx, user.ID, s.settings.MaxEntriesPerUser)
	if err != nil {
		return "", err
	}

	feedLink := fmt.Sprintf("%s/feeds/%s/%s", s.settings.BaseURL, loginName, token)
	feed := &gorillafeeds.Feed{
		Title:   fmt.Sprintf("JuliaBase news for %s", user.DisplayName),
		Link:    &gorillafeeds.Link{Href: feedLink},
		Id:      feedLink,
		Updated: time.Now().UTC(),
	}
	if len(entries) > 0 {
		feed.Updated = entries[0].Timestamp
	}

	for _, entry := range entries {
		feed.Items = append(feed.Items, &gorillafeeds.Item{
			Id:          entry.ID,
			Title:       entry.Title,
			Description: entry.Summary,
			Link:        &gorillafeeds.Link{Href: s.settings.BaseURL + entry.Link},
			Updated:     entry.Timestamp,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return "", err
	}
	return atom, nil
}

func (s *feedService) ListForUser(ctx context.Context, userID string) ([]*feeds.Entry, error) {
	entries, err := s.feedRepo.ListForUser(ctx, userID, s.settings.MaxEntriesPerUser)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
