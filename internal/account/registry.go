package account

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	ResolverIdleTTL = 10 * time.Minute
	sweepInterval   = time.Minute
)

// Registry keeps one Resolver per user.
type Registry struct {
	mu        sync.Mutex
	resolvers map[string]*Resolver
	resolve   ResolveFunc
	delay     time.Duration
	idleTTL   time.Duration
	logger    *zap.Logger
}

func NewRegistry(resolve ResolveFunc, delay time.Duration, logger ...*zap.Logger) *Registry {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Registry{
		resolvers: make(map[string]*Resolver),
		resolve:   resolve,
		delay:     delay,
		idleTTL:   ResolverIdleTTL,
		logger:    l,
	}
}

func (r *Registry) Get(userID string) (*Resolver, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resolvers[userID]
	return res, ok
}

// GetOrCreate reports created=true when a fresh resolver was made.
func (r *Registry) GetOrCreate(userID string) (res *Resolver, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.resolvers[userID]; ok {
		return res, false
	}
	res = NewResolver(r.resolve, r.delay, r.logger.With(zap.String("user_id", userID)))
	r.resolvers[userID] = res
	return res, true
}

func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	res, ok := r.resolvers[userID]
	delete(r.resolvers, userID)
	r.mu.Unlock()

	if ok {
		res.Dispose()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolvers)
}

// Sweep disposes resolvers untouched for longer than the idle TTL and
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var idle []*Resolver
	for userID, res := range r.resolvers {
		if now.Sub(res.idleSince()) > r.idleTTL {
			idle = append(idle, res)
			delete(r.resolvers, userID)
		}
	}
	r.mu.Unlock()

	for _, res := range idle {
		res.Dispose()
	}
	return len(idle)
}

// Run sweeps idle resolvers until ctx is done, then disposes the rest.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Debug("disposed idle resolvers", zap.Int("count", n))
			}
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	all := r.resolvers
	r.resolvers = make(map[string]*Resolver)
	r.mu.Unlock()

	for _, res := range all {
		res.Dispose()
	}
}
