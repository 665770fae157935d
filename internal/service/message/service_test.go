package message

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/message"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/notification"
	"github.com/worklog-hq/timesheet-backend-go/internal/domain/user"
)

// fakeUserRepo serves a fixed set of users
type fakeUserRepo struct {
	users map[int64]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeUserRepo) CreateRole(ctx context.Context, role *user.Role) (*user.Role, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	var result []*user.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// fakeNotifier records created notifications
type fakeNotifier struct {
	mu      sync.Mutex
	created []notification.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID int64, msg string) (*notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := notification.Notification{ID: int64(len(f.created) + 1), UserID: userID, Message: msg}
	f.created = append(f.created, n)
	return &n, nil
}

func (f *fakeNotifier) List(ctx context.Context, userID int64) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID int64, id int64) error { return nil }

func (f *fakeNotifier) DeleteRead(ctx context.Context, userID int64) (int64, error) { return 0, nil }

// fakeRelay fails for chat ids present in failFor
type fakeRelay struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (f *fakeRelay) SendMessage(ctx context.Context, chatID string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[chatID] {
		return fmt.Errorf("chat unreachable")
	}
	f.sent = append(f.sent, chatID)
	return nil
}

func testUsers() map[int64]*user.User {
	return map[int64]*user.User{
		1: {ID: 1, Username: "alice", ChatID: "chat-1"},
		2: {ID: 2, Username: "bob", ChatID: "chat-2"},
		3: {ID: 3, Username: "carol", ChatID: ""},
	}
}

func TestSend_AllRecipientsReached(t *testing.T) {
	relay := &fakeRelay{}
	notifier := &fakeNotifier{}
	svc := NewMessageService(&fakeUserRepo{users: testUsers()}, notifier, relay, nil)

	resp, err := svc.Send(context.Background(), message.SendMessagesRequest{
		Users:   []int64{1, 2},
		Message: "maintenance window tonight",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Sent)
	assert.Empty(t, resp.FailedUsers)
	assert.Len(t, notifier.created, 2)
}

func TestSend_PartialFailureCollected(t *testing.T) {
	relay := &fakeRelay{failFor: map[string]bool{"chat-2": true}}
	notifier := &fakeNotifier{}
	svc := NewMessageService(&fakeUserRepo{users: testUsers()}, notifier, relay, nil)

	resp, err := svc.Send(context.Background(), message.SendMessagesRequest{
		Users:   []int64{1, 2, 3, 99},
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Sent)
	require.Len(t, resp.FailedUsers, 3)

	failedIDs := make(map[int64]string)
	for _, f := range resp.FailedUsers {
		failedIDs[f.UserID] = f.Reason
	}
	assert.Contains(t, failedIDs, int64(2))  // relay failure
	assert.Contains(t, failedIDs, int64(3))  // no contact channel
	assert.Contains(t, failedIDs, int64(99)) // unknown user

	// Only delivered messages get an in-app copy
	assert.Len(t, notifier.created, 1)
	assert.Equal(t, int64(1), notifier.created[0].UserID)
}

func TestSend_AllFail(t *testing.T) {
	relay := &fakeRelay{failFor: map[string]bool{"chat-1": true, "chat-2": true}}
	svc := NewMessageService(&fakeUserRepo{users: testUsers()}, &fakeNotifier{}, relay, nil)

	resp, err := svc.Send(context.Background(), message.SendMessagesRequest{
		Users:   []int64{1, 2},
		Message: "hello",
	})
	assert.ErrorIs(t, err, message.ErrAllRecipientsFail)
	assert.Equal(t, 0, resp.Sent)
	assert.Len(t, resp.FailedUsers, 2)
}

func TestSend_ValidatesInput(t *testing.T) {
	svc := NewMessageService(&fakeUserRepo{users: testUsers()}, &fakeNotifier{}, &fakeRelay{}, nil)

	_, err := svc.Send(context.Background(), message.SendMessagesRequest{Users: []int64{1}, Message: "  "})
	assert.ErrorIs(t, err, message.ErrEmptyMessage)

	_, err = svc.Send(context.Background(), message.SendMessagesRequest{Message: "hi"})
	assert.ErrorIs(t, err, message.ErrNoRecipients)
}
