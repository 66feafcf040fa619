package galton

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/galton/internal/board"
)

// Ensemble drops a board's balls across several workers. Each worker fills
// a private histogram; the histograms are summed once all workers finish.
type Ensemble struct {
	cfg       board.Config
	workers   int
	pool      *CountsPool
	observers []Observer
}

func NewEnsemble(cfg board.Config, workers int) (*Ensemble, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	workers = min(workers, cfg.Balls)
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{
		cfg:     cfg,
		workers: workers,
		pool:    NewCountsPool(cfg.Width),
	}, nil
}

func (e *Ensemble) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Ensemble) Workers() int { return e.workers }

// Run returns the merged histogram. For a fixed non-zero seed and worker
// count the result is deterministic.
func (e *Ensemble) Run(ctx context.Context) ([]int, error) {
	baseSeed := e.cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	quota := e.cfg.Balls / e.workers
	extra := e.cfg.Balls % e.workers

	sims := make([]*Simulator, e.workers)
	progress := e.progress()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.workers; i++ {
		wcfg := e.cfg
		wcfg.Balls = quota
		if i < extra {
			wcfg.Balls++
		}
		wcfg.Seed = baseSeed + int64(i)

		s, err := New(wcfg,
			WithCoin(NewSeededCoin(wcfg.Seed)),
			withCounts(e.pool.Get()),
			WithObserver(progress),
		)
		if err != nil {
			return nil, err
		}
		sims[i] = s

		g.Go(func() error {
			return s.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		for _, s := range sims {
			if s != nil {
				e.pool.Put(s.counts)
			}
		}
		return nil, err
	}

	total := make([]int, e.cfg.Width)
	for _, s := range sims {
		for i, c := range s.counts {
			total[i] += c
		}
		e.pool.Put(s.counts)
	}

	return total, nil
}

// progress sums per-worker reports into a board-wide count and forwards
// them to the ensemble's observers one at a time. Every worker report
// stands for exactly one interval of newly dropped balls.
func (e *Ensemble) progress() Observer {
	var (
		mu   sync.Mutex
		done int
	)
	return ProgressFunc(func(int, int) {
		mu.Lock()
		defer mu.Unlock()
		done += board.ProgressInterval
		for _, obs := range e.observers {
			obs.OnProgress(done, e.cfg.Balls)
		}
	})
}
