package analyzer

// Waiters returns the number of callers blocked on in-flight requests.
func Waiters(a *Analyzer) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, f := range a.flights {
		n += f.waiters
	}
	return n
}
