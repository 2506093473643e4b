package service

import (
	"sync"

	"github.com/VladPetriv/currency_converter/pkg/logger"
	"github.com/VladPetriv/currency_converter/pkg/money"
)

// session binds one chat to its own converter controller and result panel.
type session struct {
	logger     *logger.Logger
	chatID     int
	messenger  Messenger
	controller *Controller

	mu             sync.Mutex
	panelMessageID int
	picker         pickerKind
	latest         ControllerSnapshot

	dirty chan struct{}
	done  chan struct{}
	wg    sync.WaitGroup
}

type sessionOptions struct {
	logger       *logger.Logger
	chatID       int
	messenger    Messenger
	rateProvider RateProvider
}

func newSession(opts sessionOptions) *session {
	s := &session{
		logger:    opts.logger,
		chatID:    opts.chatID,
		messenger: opts.messenger,
		dirty:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	s.controller = NewController(ControllerOptions{
		Logger:       opts.logger,
		RateProvider: opts.rateProvider,
		// A fresh panel converts one unit of the source currency.
		Amount:   money.One,
		OnChange: s.onChange,
	})
	s.latest = s.controller.Snapshot()

	s.wg.Add(1)
	go s.render()

	return s
}

// onChange is called by controller with its lock held.
func (s *session) onChange(snapshot ControllerSnapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.mu.Unlock()

	s.markDirty()
}

func (s *session) setPicker(picker pickerKind) {
	s.mu.Lock()
	s.picker = picker
	s.mu.Unlock()

	s.markDirty()
}

func (s *session) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// render draws the latest snapshot, intermediate snapshots are skipped.
func (s *session) render() {
	defer s.wg.Done()

	logger := s.logger.With().Str("name", "session.render").Int("chatID", s.chatID).Logger()

	for {
		select {
		case <-s.done:
			return
		case <-s.dirty:
		}

		s.mu.Lock()
		snapshot, picker, messageID := s.latest, s.picker, s.panelMessageID
		s.mu.Unlock()

		text, keyboard := renderPanel(snapshot, picker)

		if messageID == 0 {
			sentMessageID, err := s.messenger.SendWithKeyboard(SendWithKeyboardOptions{
				ChatID:         s.chatID,
				Message:        text,
				InlineKeyboard: keyboard,
			})
			if err != nil {
				logger.Error().Err(err).Msg("send panel message")
				continue
			}

			s.mu.Lock()
			s.panelMessageID = sentMessageID
			s.mu.Unlock()
			continue
		}

		err := s.messenger.EditWithKeyboard(EditWithKeyboardOptions{
			ChatID:         s.chatID,
			MessageID:      messageID,
			Message:        text,
			InlineKeyboard: keyboard,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("edit panel message")
		}
	}
}

// close cancels the in-flight fetch and stops the renderer.
func (s *session) close() {
	s.controller.Close()
	close(s.done)
	s.wg.Wait()
}
