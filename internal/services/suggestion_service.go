package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/astritdwi/smartbudget/internal/classifier"
	applog "github.com/astritdwi/smartbudget/internal/log"
)

// DefaultSuggestDelay is the quiet period after the last keystroke
// before a suggestion fires.
const DefaultSuggestDelay = 500 * time.Millisecond

// SuggestionService debounces description input and emits a category
// suggestion once typing pauses. Each Observe call reschedules the
// timer, so only the final text within a burst produces a callback.
type SuggestionService struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	emit    func(text string, result classifier.Result)
	closed  bool
	pending string
}

// NewSuggestionService builds a debouncer that calls emit with the
// classification of the last observed text. A non-positive delay falls
// back to the default.
func NewSuggestionService(delay time.Duration, emit func(text string, result classifier.Result)) *SuggestionService {
	if delay <= 0 {
		delay = DefaultSuggestDelay
	}
	return &SuggestionService{delay: delay, emit: emit}
}

// Observe records the latest input text and restarts the quiet-period
// timer. The previous pending suggestion, if any, is cancelled.
func (s *SuggestionService) Observe(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = text
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *SuggestionService) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	text := s.pending
	emit := s.emit
	s.mu.Unlock()

	result := classifier.DetectCategory(text)
	slog.Debug("Suggestion emitted",
		applog.FieldComponent, applog.ComponentSuggest,
		applog.FieldCategory, result.Category,
		applog.FieldConfidence, result.Confidence)
	if emit != nil {
		emit(text, result)
	}
}

// Close cancels any pending suggestion. Observe becomes a no-op.
func (s *SuggestionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
