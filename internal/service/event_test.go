package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VladPetriv/currency_converter/internal/models"
	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventuallyTick = 10 * time.Millisecond

type testMessage struct {
	updateID   int
	chatID     int
	text       string
	callbackID string
}

func (m testMessage) GetUpdateID() int      { return m.updateID }
func (m testMessage) GetChatID() int        { return m.chatID }
func (m testMessage) GetText() string       { return m.text }
func (m testMessage) GetCallbackID() string { return m.callbackID }
func (m testMessage) GetSenderName() string { return "tester" }

type panelUpdate struct {
	chatID    int
	messageID int
	text      string
	keyboard  []InlineKeyboardRow
}

// fakeMessenger records everything sent to chats.
type fakeMessenger struct {
	updates chan Message

	mu            sync.Mutex
	nextMessageID int
	messages      []string
	sent          []panelUpdate
	edited        []panelUpdate
	answered      []string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{updates: make(chan Message)}
}

func (m *fakeMessenger) ReadUpdates(result chan Message, _ chan error) {
	for update := range m.updates {
		result <- update
	}
}

func (m *fakeMessenger) SendMessage(_ int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, text)
	return nil
}

func (m *fakeMessenger) SendWithKeyboard(opts SendWithKeyboardOptions) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextMessageID++
	m.sent = append(m.sent, panelUpdate{
		chatID:    opts.ChatID,
		messageID: m.nextMessageID,
		text:      opts.Message,
		keyboard:  opts.InlineKeyboard,
	})

	return m.nextMessageID, nil
}

func (m *fakeMessenger) EditWithKeyboard(opts EditWithKeyboardOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.edited = append(m.edited, panelUpdate{
		chatID:    opts.ChatID,
		messageID: opts.MessageID,
		text:      opts.Message,
		keyboard:  opts.InlineKeyboard,
	})

	return nil
}

func (m *fakeMessenger) AnswerCallback(callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.answered = append(m.answered, callbackID)
	return nil
}

func (m *fakeMessenger) Close() error {
	return nil
}

func (m *fakeMessenger) textMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.messages...)
}

func (m *fakeMessenger) answeredCallbacks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.answered...)
}

func (m *fakeMessenger) lastPanel(chatID int) (panelUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.edited) - 1; i >= 0; i-- {
		if m.edited[i].chatID == chatID {
			return m.edited[i], true
		}
	}
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].chatID == chatID {
			return m.sent[i], true
		}
	}

	return panelUpdate{}, false
}

func (m *fakeMessenger) panelMessageIDs(chatID int) (sent []int, edited []int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.sent {
		if p.chatID == chatID {
			sent = append(sent, p.messageID)
		}
	}
	for _, p := range m.edited {
		if p.chatID == chatID {
			edited = append(edited, p.messageID)
		}
	}

	return sent, edited
}

func (m *fakeMessenger) waitForPanel(t *testing.T, chatID int, contains string) panelUpdate {
	t.Helper()

	var last panelUpdate
	require.Eventually(t, func() bool {
		panel, ok := m.lastPanel(chatID)
		last = panel
		return ok && strings.Contains(panel.text, contains)
	}, waitTimeout, eventuallyTick, "panel does not contain %q", contains)

	return last
}

func newTestEventService(t *testing.T, messenger Messenger) *eventService {
	t.Helper()

	provider := &funcRateProvider{fn: func(base string) (*models.RateSnapshot, error) {
		switch base {
		case "USD":
			return rateSnapshot(base, map[string]float64{"EUR": 0.92, "GBP": 0.79}), nil
		case "EUR":
			return rateSnapshot(base, map[string]float64{"USD": 1.087}), nil
		default:
			return nil, errors.New("unexpected base")
		}
	}}

	e := NewEvent(EventOptions{
		Logger:       logger.Nop(),
		APIs:         APIs{Messenger: messenger, RateProvider: provider},
		WorkersCount: 2,
		QueueSize:    8,
	})
	t.Cleanup(e.Close)

	return e
}

func (e *eventService) sessionsCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.sessions)
}

func TestEvent_StartOpensPanel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	messenger := newFakeMessenger()
	e := newTestEventService(t, messenger)

	require.NoError(t, e.handleUpdate(ctx, "1", testMessage{updateID: 1, chatID: 10, text: botStartCommand}))
	assert.Equal(t, []string{startMessage}, messenger.textMessages())

	panel := messenger.waitForPanel(t, 10, "0.92 EUR")
	assert.Contains(t, panel.text, "Amount: 1 USD")

	require.NoError(t, e.handleUpdate(ctx, "2", testMessage{updateID: 2, chatID: 10, text: "100"}))
	panel = messenger.waitForPanel(t, 10, "92.00 EUR")
	assert.Contains(t, panel.text, "1 USD = 0.920000 EUR")
	assert.Contains(t, panel.text, "Amount: 100 USD")

	sent, edited := messenger.panelMessageIDs(10)
	require.Len(t, sent, 1, "panel is sent once and then edited")
	for _, messageID := range edited {
		assert.Equal(t, sent[0], messageID)
	}
}

func TestEvent_InvalidAmountIsRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	messenger := newFakeMessenger()
	e := newTestEventService(t, messenger)

	require.NoError(t, e.handleUpdate(ctx, "1", testMessage{updateID: 1, chatID: 20, text: "50"}))
	messenger.waitForPanel(t, 20, "46.00 EUR")

	require.NoError(t, e.handleUpdate(ctx, "2", testMessage{updateID: 2, chatID: 20, text: "fifty"}))
	require.NoError(t, e.handleUpdate(ctx, "3", testMessage{updateID: 3, chatID: 20, text: "1e-400000000"}))
	assert.Equal(t, []string{"amount must be a number", "amount must be a number"}, messenger.textMessages())

	panel, ok := messenger.lastPanel(20)
	require.True(t, ok)
	assert.Contains(t, panel.text, "46.00 EUR")
}

func TestEvent_Callbacks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	messenger := newFakeMessenger()
	e := newTestEventService(t, messenger)

	require.NoError(t, e.handleUpdate(ctx, "1", testMessage{updateID: 1, chatID: 30, text: "10"}))
	messenger.waitForPanel(t, 30, "9.20 EUR")

	require.NoError(t, e.handleUpdate(ctx, "2", testMessage{updateID: 2, chatID: 30, text: callbackPickTarget, callbackID: "cb-2"}))
	require.Eventually(t, func() bool {
		panel, ok := messenger.lastPanel(30)
		return ok && len(panel.keyboard) == 3 && panel.keyboard[2].Buttons[0].Data == callbackBack
	}, waitTimeout, eventuallyTick)

	require.NoError(t, e.handleUpdate(ctx, "3", testMessage{updateID: 3, chatID: 30, text: callbackTargetPrefix + "GBP", callbackID: "cb-3"}))
	panel := messenger.waitForPanel(t, 30, "7.90 GBP")
	assert.Equal(t, "To: GBP", panel.keyboard[0].Buttons[2].Text)

	require.NoError(t, e.handleUpdate(ctx, "4", testMessage{updateID: 4, chatID: 30, text: callbackTargetPrefix + "EUR", callbackID: "cb-4"}))
	messenger.waitForPanel(t, 30, "9.20 EUR")

	require.NoError(t, e.handleUpdate(ctx, "5", testMessage{updateID: 5, chatID: 30, text: callbackSwap, callbackID: "cb-5"}))
	panel = messenger.waitForPanel(t, 30, "10.87 USD")
	assert.Contains(t, panel.text, "From EUR to USD")

	require.NoError(t, e.handleUpdate(ctx, "6", testMessage{updateID: 6, chatID: 30, text: callbackSourcePrefix + "XYZ", callbackID: "cb-6"}))
	assert.Equal(t, []string{"unsupported currency: XYZ"}, messenger.textMessages())

	assert.Equal(t, []string{"cb-2", "cb-3", "cb-4", "cb-5", "cb-6"}, messenger.answeredCallbacks())
}

func TestEvent_StopClosesSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	messenger := newFakeMessenger()
	e := newTestEventService(t, messenger)

	require.NoError(t, e.handleUpdate(ctx, "1", testMessage{updateID: 1, chatID: 40, text: botStartCommand}))
	require.NoError(t, e.handleUpdate(ctx, "2", testMessage{updateID: 2, chatID: 41, text: botStartCommand}))
	assert.Equal(t, 2, e.sessionsCount())

	require.NoError(t, e.handleUpdate(ctx, "3", testMessage{updateID: 3, chatID: 40, text: botStopCommand}))
	assert.Equal(t, 1, e.sessionsCount())

	e.Close()
	assert.Equal(t, 0, e.sessionsCount())
}

func TestEvent_Listen(t *testing.T) {
	t.Parallel()

	messenger := newFakeMessenger()
	e := newTestEventService(t, messenger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Listen(ctx)
	}()

	messenger.updates <- testMessage{updateID: 1, chatID: 50, text: botStartCommand}
	messenger.updates <- testMessage{updateID: 2, chatID: 50, text: "1000"}

	messenger.waitForPanel(t, 50, "920.00 EUR")

	cancel()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		require.FailNow(t, "listen did not stop after context cancellation")
	}
}
