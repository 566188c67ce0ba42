package core

import "time"

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) Time {
	delay := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if delay <= 0 {
		delay = time.Millisecond
	}

	return Time{
		eventPollDelay: cfg.EventPollDelay,
		eventTicker:    time.NewTicker(delay),
	}
}

// Time contains all the time services and tickers
type Time struct {
	eventPollDelay int
	eventTicker    *time.Ticker
}

// EventPollDelay returns the configured delay between event polls, in milliseconds
func (t *Time) EventPollDelay() int {
	return t.eventPollDelay
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Stop stops all tickers
func (t *Time) Stop() {
	t.eventTicker.Stop()
}
