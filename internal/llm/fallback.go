package llm

// phase is a step of the model fallback sequence.
type phase int

const (
	phaseTryPrimary phase = iota
	phaseRateLimitWait
	phaseTryFallback
	phaseExhausted
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseTryPrimary:
		return "try_primary"
	case phaseRateLimitWait:
		return "rate_limit_wait"
	case phaseTryFallback:
		return "try_fallback"
	case phaseExhausted:
		return "exhausted"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// fallbackState walks the candidate models in order. Each model gets one
// attempt, plus a single retry after a cooldown when the attempt was rate
// limited.
type fallbackState struct {
	models  []string
	idx     int
	phase   phase
	waited  bool
	lastErr error
}

func newFallbackState(models []string) *fallbackState {
	s := &fallbackState{models: models}
	if len(models) == 0 {
		s.phase = phaseExhausted
	}
	return s
}

// model returns the candidate currently being tried.
func (s *fallbackState) model() string {
	return s.models[s.idx]
}

// observe records the outcome of an attempt and moves to the next phase.
func (s *fallbackState) observe(err error) {
	if err == nil {
		s.phase = phaseDone
		return
	}
	s.lastErr = err
	if IsRateLimited(err) && !s.waited {
		s.phase = phaseRateLimitWait
		return
	}
	s.next()
}

// resume re-enters the attempt phase for the same model after a cooldown.
func (s *fallbackState) resume() {
	s.waited = true
	if s.idx == 0 {
		s.phase = phaseTryPrimary
	} else {
		s.phase = phaseTryFallback
	}
}

func (s *fallbackState) next() {
	s.idx++
	s.waited = false
	if s.idx >= len(s.models) {
		s.phase = phaseExhausted
		return
	}
	s.phase = phaseTryFallback
}
