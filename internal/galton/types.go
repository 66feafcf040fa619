package galton

// Observer is notified as balls complete their walk.
type Observer interface {
	OnProgress(completed, total int)
}

// ProgressFunc adapts a plain function to Observer.
type ProgressFunc func(completed, total int)

func (f ProgressFunc) OnProgress(completed, total int) { f(completed, total) }

// Option configures a Simulator.
type Option func(*Simulator)

// WithCoin replaces the default seeded coin.
func WithCoin(c Coin) Option {
	return func(s *Simulator) { s.coin = c }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// WithProgressEvery changes the reporting interval; n <= 0 disables it.
func WithProgressEvery(n int) Option {
	return func(s *Simulator) { s.every = n }
}

// withCounts lets the ensemble hand a pooled histogram to a worker.
func withCounts(buf []int) Option {
	return func(s *Simulator) { s.counts = buf }
}
