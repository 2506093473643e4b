package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/VladPetriv/currency_converter/pkg/errs"
	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/VladPetriv/currency_converter/pkg/worker"
)

type eventService struct {
	logger *logger.Logger
	apis   APIs
	pool   *worker.Pool[Message]

	mu       sync.Mutex
	sessions map[int]*session
}

var _ EventService = (*eventService)(nil)

// EventOptions represents an input options for creating new instance of event service.
type EventOptions struct {
	Logger       *logger.Logger
	APIs         APIs
	WorkersCount int
	QueueSize    int
}

// NewEvent returns new instance of event service.
func NewEvent(opts EventOptions) *eventService {
	e := &eventService{
		logger:   opts.Logger,
		apis:     opts.APIs,
		sessions: make(map[int]*session),
	}
	e.pool = worker.NewPool(opts.Logger, opts.WorkersCount, opts.QueueSize, e.handleUpdate)

	return e
}

func (e *eventService) Listen(ctx context.Context) {
	logger := e.logger.With().Str("name", "eventService.Listen").Logger()

	updatesCH := make(chan Message, 64)
	errorsCH := make(chan error, 1)

	e.pool.Start(ctx)
	go e.apis.Messenger.ReadUpdates(updatesCH, errorsCH)

	logger.Info().Msg("listening for updates")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stop listening for updates")
			return
		case err := <-errorsCH:
			logger.Error().Err(err).Msg("read updates")
		case update := <-updatesCH:
			// Updates of one chat are handled sequentially to keep the order of user actions.
			queued := e.pool.AddJob(
				ctx,
				strconv.Itoa(update.GetUpdateID()),
				strconv.Itoa(update.GetChatID()),
				update,
			)
			if !queued {
				logger.Info().Int("updateID", update.GetUpdateID()).Msg("dropped update on shutdown")
			}
		}
	}
}

func (e *eventService) Close() {
	e.pool.Stop()

	e.mu.Lock()
	sessions := e.sessions
	e.sessions = make(map[int]*session)
	e.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

func (e *eventService) handleUpdate(_ context.Context, id string, msg Message) (err error) {
	logger := e.logger.With().Str("name", "eventService.handleUpdate").Str("updateID", id).Logger()
	logger.Debug().Int("chatID", msg.GetChatID()).Str("text", msg.GetText()).Msg("got args")

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Any("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("recovered from panic while processing update")
			err = fmt.Errorf("panic while processing update: %v", r)
		}
	}()

	if callbackID := msg.GetCallbackID(); callbackID != "" {
		answerErr := e.apis.Messenger.AnswerCallback(callbackID)
		if answerErr != nil {
			logger.Warn().Err(answerErr).Msg("answer callback")
		}
	}

	chatID := msg.GetChatID()
	text := strings.TrimSpace(msg.GetText())

	switch text {
	case botStartCommand:
		e.closeSession(chatID)
		err := e.apis.Messenger.SendMessage(chatID, startMessage)
		if err != nil {
			logger.Error().Err(err).Msg("send start message")
			return fmt.Errorf("send start message: %w", err)
		}
		s, _ := e.getOrCreateSession(chatID)
		s.controller.Refresh()

		logger.Info().Int("chatID", chatID).Msg("handled event start")
		return nil
	case botStopCommand:
		e.closeSession(chatID)

		logger.Info().Int("chatID", chatID).Msg("handled event stop")
		return nil
	}

	s, created := e.getOrCreateSession(chatID)
	if created {
		s.controller.Refresh()
	}

	err = e.handleAction(s, text)
	if err != nil {
		if errs.IsExpected(err) {
			logger.Info().Err(err).Msg("rejected user input")
			sendErr := e.apis.Messenger.SendMessage(chatID, ErrorMessage(err))
			if sendErr != nil {
				logger.Error().Err(sendErr).Msg("send validation message")
				return fmt.Errorf("send validation message: %w", sendErr)
			}
			return nil
		}

		logger.Error().Err(err).Msg("handle action")
		return fmt.Errorf("handle action: %w", err)
	}

	return nil
}

func (e *eventService) handleAction(s *session, text string) error {
	switch {
	case text == callbackPickSource:
		s.setPicker(pickerSource)
	case text == callbackPickTarget:
		s.setPicker(pickerTarget)
	case text == callbackBack:
		s.setPicker(pickerNone)
	case text == callbackSwap:
		s.controller.Swap()
	case text == callbackRetry:
		s.controller.Refresh()
	case strings.HasPrefix(text, callbackSourcePrefix):
		s.setPicker(pickerNone)
		return s.controller.SetSource(strings.TrimPrefix(text, callbackSourcePrefix))
	case strings.HasPrefix(text, callbackTargetPrefix):
		s.setPicker(pickerNone)
		return s.controller.SetTarget(strings.TrimPrefix(text, callbackTargetPrefix))
	default:
		amount, err := ParseAmount(text)
		if err != nil {
			return err
		}
		s.controller.SetAmount(amount)
	}

	return nil
}

func (e *eventService) getOrCreateSession(chatID int) (*session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[chatID]
	if ok {
		return s, false
	}

	s = newSession(sessionOptions{
		logger:       e.logger,
		chatID:       chatID,
		messenger:    e.apis.Messenger,
		rateProvider: e.apis.RateProvider,
	})
	e.sessions[chatID] = s

	return s, true
}

func (e *eventService) closeSession(chatID int) {
	e.mu.Lock()
	s, ok := e.sessions[chatID]
	delete(e.sessions, chatID)
	e.mu.Unlock()

	if ok {
		s.close()
	}
}
