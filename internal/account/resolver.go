package account

import (
	"context"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDebounce = 500 * time.Millisecond

	HelperResolving = "Resolving account name..."
	HelperVerified  = "Account verified"

	ErrMsgAccountFormat = "Account number must be exactly 10 digits"
	ErrMsgUnresolved    = "Could not verify account. Check the bank and account number."
)

var accountNumberPattern = regexp.MustCompile(`^\d{10}$`)

func ValidAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// ResolveFunc looks up the holder name of an account.
type ResolveFunc func(ctx context.Context, bankID, accountNumber string) (string, error)

type ResolutionState struct {
	BankID             string `json:"bankId"`
	AccountNumber      string `json:"accountNumber"`
	ResolvedName       string `json:"resolvedName"`
	IsResolving        bool   `json:"isResolving"`
	AccountNumberError string `json:"accountNumberError,omitempty"`
	NameTouched        bool   `json:"nameTouched"`
	HelperText         string `json:"helperText,omitempty"`
}

// Resolver debounces bank account edits and resolves the holder name once
// the pair has been quiet for the configured delay. Responses are applied
// only when no newer edit or call was issued after them.
type Resolver struct {
	mu       sync.Mutex
	resolve  ResolveFunc
	delay    time.Duration
	timer    *time.Timer
	seq      uint64
	state    ResolutionState
	baseline [2]string
	// initializing is set while the saved pair from the profile is being
	// resolved; edits back to that pair are ignored until it lands.
	initializing bool
	disposed     bool
	lastUsed     time.Time
	inflight     sync.WaitGroup
	logger       *zap.Logger
}

func NewResolver(resolve ResolveFunc, delay time.Duration, logger ...*zap.Logger) *Resolver {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if delay < 0 {
		delay = DefaultDebounce
	}
	return &Resolver{
		resolve:  resolve,
		delay:    delay,
		lastUsed: time.Now(),
		logger:   l.Named("account.resolver"),
	}
}

// Submit records an edit of either field. ctx supplies request values such
// as the access token; its cancellation does not abort the resolution.
func (r *Resolver) Submit(ctx context.Context, bankID, accountNumber string) ResolutionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastUsed = time.Now()
	if r.disposed {
		return r.state
	}

	if r.initializing {
		if bankID == r.baseline[0] && accountNumber == r.baseline[1] {
			return r.state
		}
		r.initializing = false
	}

	if bankID == r.state.BankID && accountNumber == r.state.AccountNumber &&
		(r.state.IsResolving || r.state.ResolvedName != "" || r.timer != nil) {
		return r.state
	}

	r.stopTimer()
	r.seq++
	r.state = ResolutionState{BankID: bankID, AccountNumber: accountNumber}

	if bankID == "" || accountNumber == "" {
		return r.state
	}
	if !ValidAccountNumber(accountNumber) {
		r.state.AccountNumberError = ErrMsgAccountFormat
		return r.state
	}

	seq := r.seq
	base := context.WithoutCancel(ctx)
	r.timer = time.AfterFunc(r.delay, func() {
		r.fire(base, seq)
	})
	return r.state
}

// ResolveInitial seeds the resolver with a saved pair and resolves it right
// away when it is valid.
func (r *Resolver) ResolveInitial(ctx context.Context, bankID, accountNumber string) ResolutionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastUsed = time.Now()
	if r.disposed {
		return r.state
	}

	r.stopTimer()
	r.seq++
	r.state = ResolutionState{BankID: bankID, AccountNumber: accountNumber}
	if bankID == "" || !ValidAccountNumber(accountNumber) {
		return r.state
	}

	r.initializing = true
	r.baseline = [2]string{bankID, accountNumber}
	r.issueLocked(context.WithoutCancel(ctx), r.seq)
	return r.state
}

func (r *Resolver) State() ResolutionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastUsed = time.Now()
	return r.state
}

// Dispose cancels any pending timer and drops results still in flight.
func (r *Resolver) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimer()
	r.seq++
	r.disposed = true
	r.state.IsResolving = false
}

// Wait blocks until every issued resolution has returned.
func (r *Resolver) Wait() {
	r.inflight.Wait()
}

func (r *Resolver) idleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastUsed
}

func (r *Resolver) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Resolver) fire(ctx context.Context, seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop can lose the race with an already expired timer.
	if r.disposed || seq != r.seq {
		return
	}
	r.timer = nil
	r.issueLocked(ctx, seq)
}

func (r *Resolver) issueLocked(ctx context.Context, seq uint64) {
	bankID, accountNumber := r.state.BankID, r.state.AccountNumber
	r.state.IsResolving = true
	r.state.HelperText = HelperResolving

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		name, err := r.resolve(ctx, bankID, accountNumber)
		r.apply(seq, name, err)
	}()
}

func (r *Resolver) apply(seq uint64, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed || seq != r.seq {
		r.logger.Debug("discard stale resolution", zap.Uint64("seq", seq), zap.Uint64("latest", r.seq))
		return
	}

	r.initializing = false
	r.state.IsResolving = false
	if err != nil || name == "" {
		r.logger.Warn("resolve account failed",
			zap.String("bank_id", r.state.BankID),
			zap.Error(err),
		)
		r.state.ResolvedName = ""
		r.state.HelperText = ""
		r.state.AccountNumberError = ErrMsgUnresolved
		return
	}

	r.state.ResolvedName = name
	r.state.NameTouched = true
	r.state.AccountNumberError = ""
	r.state.HelperText = HelperVerified
}
