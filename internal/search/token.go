package search

import (
	"context"
	"sync"
	"time"
)

type TokenState int

const (
	TokenActive TokenState = iota
	TokenCancelled
)

// Token is the cancellation handle of one fetch.
type Token struct {
	mu     sync.Mutex
	state  TokenState
	ctx    context.Context
	cancel context.CancelFunc
}

// newToken derives the fetch context from parent. A positive timeout bounds the fetch.
func newToken(parent context.Context, timeout time.Duration) *Token {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	return &Token{state: TokenActive, ctx: ctx, cancel: cancel}
}

func (t *Token) Context() context.Context {
	return t.ctx
}

// Cancel moves the token to TokenCancelled and signals its context. It is idempotent.
func (t *Token) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TokenCancelled
	t.cancel()
}

func (t *Token) State() TokenState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// release frees the context without marking the token cancelled.
func (t *Token) release() {
	t.cancel()
}
