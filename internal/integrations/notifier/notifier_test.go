package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{}, nil
}

type fakeStore struct {
	created   []*domain.Notification
	delivered []int64
	email     string
	createErr error
}

func (f *fakeStore) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n.ID = int64(len(f.created) + 1)
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeStore) MarkDelivered(_ context.Context, id int64, _ time.Time) error {
	f.delivered = append(f.delivered, id)
	return nil
}

func (f *fakeStore) GetRecipientEmail(_ context.Context, _ int64) (string, error) {
	return f.email, nil
}

type fakeSender struct {
	sent []EmailMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg EmailMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func TestDispatcher_NotifySchedulesTaskAtSendAt(t *testing.T) {
	enq := &fakeEnqueuer{}
	d := NewDispatcher(enq, "notifications", logger.NewNop())
	sendAt := time.Date(2024, 11, 6, 9, 0, 0, 0, time.UTC)

	d.Notify(context.Background(), 10, "Reminder: session tomorrow at 09:00", sendAt)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeNotificationSend, enq.tasks[0].Type())

	var p Payload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, int64(10), p.UserID)
	assert.True(t, sendAt.Equal(p.SendAt))

	var processAt time.Time
	var queue string
	for _, opt := range enq.opts[0] {
		switch opt.Type() {
		case asynq.ProcessAtOpt:
			processAt = opt.Value().(time.Time)
		case asynq.QueueOpt:
			queue = opt.Value().(string)
		}
	}
	assert.True(t, sendAt.Equal(processAt))
	assert.Equal(t, "notifications", queue)
}

func TestDispatcher_EnqueueFailureIsSwallowed(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	d := NewDispatcher(enq, "", logger.NewNop())

	assert.NotPanics(t, func() {
		d.Notify(context.Background(), 10, "hello", time.Now())
	})
	assert.Empty(t, enq.tasks)
}

func TestDispatcher_NilClientDrops(t *testing.T) {
	d := NewDispatcher(nil, "", logger.NewNop())
	assert.NotPanics(t, func() {
		d.Notify(context.Background(), 10, "hello", time.Now())
	})
}

func newTask(t *testing.T, p Payload) *asynq.Task {
	t.Helper()
	task, _, err := NewTask(p, "")
	require.NoError(t, err)
	return task
}

func TestHandler_StoresAndEmails(t *testing.T) {
	store := &fakeStore{email: "parent@example.com"}
	sender := &fakeSender{}
	h := NewHandler(store, sender, logger.NewNop())

	err := h.ProcessTask(context.Background(), newTask(t, Payload{UserID: 10, Message: "Booking confirmed", SendAt: time.Now()}))
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, "Booking confirmed", store.created[0].Message)
	assert.Equal(t, []int64{1}, store.delivered)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "parent@example.com", sender.sent[0].To)
}

func TestHandler_EmailFailureDoesNotRetry(t *testing.T) {
	store := &fakeStore{email: "parent@example.com"}
	h := NewHandler(store, &fakeSender{err: ErrEmailSend}, logger.NewNop())

	err := h.ProcessTask(context.Background(), newTask(t, Payload{UserID: 10, Message: "x", SendAt: time.Now()}))
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
}

func TestHandler_StoreFailureIsRetried(t *testing.T) {
	store := &fakeStore{createErr: errors.New("db down")}
	h := NewHandler(store, &fakeSender{}, logger.NewNop())

	err := h.ProcessTask(context.Background(), newTask(t, Payload{UserID: 10, Message: "x", SendAt: time.Now()}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandler_InvalidPayloadSkipsRetry(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, logger.NewNop())

	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeNotificationSend, []byte("{broken")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestNewEmailSender_FallsBackToStub(t *testing.T) {
	s := NewEmailSender("", "no-reply@theraconnect.app", "TheraConnect", logger.NewNop())
	_, isStub := s.(*StubEmailSender)
	assert.True(t, isStub)
	assert.NoError(t, s.Send(context.Background(), EmailMessage{To: "a@b.c"}))

	sg := NewEmailSender("SG.key", "no-reply@theraconnect.app", "TheraConnect", logger.NewNop())
	_, isSendGrid := sg.(*SendGridSender)
	assert.True(t, isSendGrid)
}
