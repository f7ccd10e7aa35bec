package host

// Headless is a Window with no surface. It closes itself after a number of
// polls, or never when the limit is zero.
type Headless struct {
	limit int
	polls int
}

func NewHeadless(limit int) *Headless {
	return &Headless{limit: limit}
}

func (h *Headless) PollEvents() []Event {
	h.polls++
	if h.limit > 0 && h.polls > h.limit {
		return []Event{WindowClosed}
	}
	return nil
}

func (h *Headless) Close() error {
	return nil
}

// Polls is the number of PollEvents calls so far.
func (h *Headless) Polls() int {
	return h.polls
}
