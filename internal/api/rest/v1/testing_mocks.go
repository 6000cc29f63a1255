//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, loginName, displayName, email, password string) (*users.User, error) {
	args := m.Called(ctx, loginName, displayName, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, loginName, password string) (*users.User, error) {
	args := m.Called(ctx, loginName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, loginName, password string) (*users.User, error) {
	args := m.Called(ctx, loginName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) GetByLogin(ctx context.Context, loginName string) (*users.User, error) {
	args := m.Called(ctx, loginName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]*users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

func (m *MockUserService) Details(ctx context.Context, userID string) (*users.UserDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.UserDetails), args.Error(1)
}

// MockTokenService is a mock implementation of TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(user *users.User) (string, int64, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTokenService) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// MockPermissionChecker is a mock implementation of PermissionChecker
type MockPermissionChecker struct {
	mock.Mock
}

func (m *MockPermissionChecker) EnsureCanAdd(ctx context.Context, userID, processKind string) error {
	args := m.Called(ctx, userID, processKind)
	return args.Error(0)
}

func (m *MockPermissionChecker) EnsureCanEdit(ctx context.Context, userID, operatorID, processKind string) error {
	args := m.Called(ctx, userID, operatorID, processKind)
	return args.Error(0)
}

func (m *MockPermissionChecker) EnsureCanView(ctx context.Context, userID, operatorID, processKind string) error {
	args := m.Called(ctx, userID, operatorID, processKind)
	return args.Error(0)
}

func (m *MockPermissionChecker) Grant(ctx context.Context, actorID, userID, processKind, permission string) error {
	args := m.Called(ctx, actorID, userID, processKind, permission)
	return args.Error(0)
}

func (m *MockPermissionChecker) Revoke(ctx context.Context, actorID, userID, processKind, permission string) error {
	args := m.Called(ctx, actorID, userID, processKind, permission)
	return args.Error(0)
}

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	mock.Mock
}

func (m *MockTopicService) Create(ctx context.Context, actorID, name string, confidential bool) (*topics.Topic, error) {
	args := m.Called(ctx, actorID, name, confidential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topics.Topic), args.Error(1)
}

func (m *MockTopicService) GetByName(ctx context.Context, actorID, name string) (*topics.Topic, error) {
	args := m.Called(ctx, actorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*topics.Topic), args.Error(1)
}

func (m *MockTopicService) List(ctx context.Context, actorID string) ([]*topics.Topic, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*topics.Topic), args.Error(1)
}

func (m *MockTopicService) AddMember(ctx context.Context, actorID, topicID, userID string) error {
	args := m.Called(ctx, actorID, topicID, userID)
	return args.Error(0)
}

func (m *MockTopicService) RemoveMember(ctx context.Context, actorID, topicID, userID string) error {
	args := m.Called(ctx, actorID, topicID, userID)
	return args.Error(0)
}

// MockSampleService is a mock implementation of SampleService
type MockSampleService struct {
	mock.Mock
}

func (m *MockSampleService) Create(ctx context.Context, actorID string, sample *samples.Sample) (*samples.Sample, error) {
	args := m.Called(ctx, actorID, sample)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*samples.Sample), args.Error(1)
}

func (m *MockSampleService) GetByName(ctx context.Context, actorID, name string) (*samples.Sample, error) {
	args := m.Called(ctx, actorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*samples.Sample), args.Error(1)
}

func (m *MockSampleService) List(ctx context.Context, actorID string, query *samples.SampleQuery) ([]*samples.Sample, error) {
	args := m.Called(ctx, actorID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*samples.Sample), args.Error(1)
}

func (m *MockSampleService) Update(ctx context.Context, actorID string, sample *samples.Sample) error {
	args := m.Called(ctx, actorID, sample)
	return args.Error(0)
}

func (m *MockSampleService) Rename(ctx context.Context, actorID, sampleID, newName string) error {
	args := m.Called(ctx, actorID, sampleID, newName)
	return args.Error(0)
}

func (m *MockSampleService) Split(ctx context.Context, actorID, sampleID string, pieces int) ([]*samples.Sample, error) {
	args := m.Called(ctx, actorID, sampleID, pieces)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*samples.Sample), args.Error(1)
}

func (m *MockSampleService) DeleteByID(ctx context.Context, actorID, sampleID string) error {
	args := m.Called(ctx, actorID, sampleID)
	return args.Error(0)
}

// MockMySamplesService is a mock implementation of MySamplesService
type MockMySamplesService struct {
	mock.Mock
}

func (m *MockMySamplesService) Add(ctx context.Context, userID string, sampleIDs []string) error {
	args := m.Called(ctx, userID, sampleIDs)
	return args.Error(0)
}

func (m *MockMySamplesService) Remove(ctx context.Context, userID string, sampleIDs []string) error {
	args := m.Called(ctx, userID, sampleIDs)
	return args.Error(0)
}

func (m *MockMySamplesService) List(ctx context.Context, userID string) ([]*samples.Sample, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*samples.Sample), args.Error(1)
}

// MockDepositionService is a mock implementation of DepositionService
type MockDepositionService struct {
	mock.Mock
}

func (m *MockDepositionService) Create(ctx context.Context, actorID string, deposition *processes.Deposition) (*processes.Deposition, error) {
	args := m.Called(ctx, actorID, deposition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processes.Deposition), args.Error(1)
}

func (m *MockDepositionService) GetByNumber(ctx context.Context, actorID, number string) (*processes.Deposition, error) {
	args := m.Called(ctx, actorID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processes.Deposition), args.Error(1)
}

func (m *MockDepositionService) List(ctx context.Context, actorID string, query *processes.DepositionQuery) ([]*processes.Deposition, error) {
	args := m.Called(ctx, actorID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*processes.Deposition), args.Error(1)
}

func (m *MockDepositionService) Update(ctx context.Context, actorID, number string, comments *string, sampleIDs []string, edits []processes.LayerEdit, finished *bool) (*processes.Deposition, error) {
	args := m.Called(ctx, actorID, number, comments, sampleIDs, edits, finished)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processes.Deposition), args.Error(1)
}

// MockProcessService is a mock implementation of ProcessService
type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) Create(ctx context.Context, actorID string, process *processes.Process) (*processes.Process, error) {
	args := m.Called(ctx, actorID, process)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processes.Process), args.Error(1)
}

func (m *MockProcessService) ListForSample(ctx context.Context, actorID, sampleID string) ([]*processes.Process, error) {
	args := m.Called(ctx, actorID, sampleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*processes.Process), args.Error(1)
}

// MockStatusService is a mock implementation of StatusService
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Add(ctx context.Context, actorID string, message *status.StatusMessage) (*status.StatusMessage, error) {
	args := m.Called(ctx, actorID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.StatusMessage), args.Error(1)
}

func (m *MockStatusService) Withdraw(ctx context.Context, actorID, messageID string) error {
	args := m.Called(ctx, actorID, messageID)
	return args.Error(0)
}

func (m *MockStatusService) ListCurrent(ctx context.Context, processKind string) ([]*status.StatusMessage, error) {
	args := m.Called(ctx, processKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*status.StatusMessage), args.Error(1)
}

// MockFeedService is a mock implementation of FeedService
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Publish(event *feeds.Event) {
	m.Called(event)
}

func (m *MockFeedService) Run(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockFeedService) AtomForUser(ctx context.Context, loginName, token string) (string, error) {
	args := m.Called(ctx, loginName, token)
	return args.String(0), args.Error(1)
}

func (m *MockFeedService) ListForUser(ctx context.Context, userID string) ([]*feeds.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*feeds.Entry), args.Error(1)
}
