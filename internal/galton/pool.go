package galton

import "sync"

// CountsPool recycles zeroed histograms of a fixed width.
type CountsPool struct {
	pool  sync.Pool
	width int
}

func NewCountsPool(width int) *CountsPool {
	return &CountsPool{
		width: width,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]int, width)
			},
		},
	}
}

func (p *CountsPool) Get() []int {
	return p.pool.Get().([]int)
}

func (p *CountsPool) Put(c []int) {
	if len(c) == p.width {
		for i := range c {
			c[i] = 0
		}
		p.pool.Put(c)
	}
}
