package core

import (
	"context"

	"github.com/smallnest/chanx"
)

const mailboxCapacity = 64

// Mailbox is an unbounded multiple-producer, single-consumer queue. Items are
// received in the order they were sent. The mailbox closes when the context
// it was created with is done.
type Mailbox[T any] struct {
	ctx context.Context
	ch  *chanx.UnboundedChan[T]
}

// NewMailbox returns an empty Mailbox that lives until ctx is done.
func NewMailbox[T any](ctx context.Context) *Mailbox[T] {
	return &Mailbox[T]{
		ctx: ctx,
		ch:  chanx.NewUnboundedChan[T](ctx, mailboxCapacity),
	}
}

// Send enqueues v. Items sent after the mailbox closed are dropped.
func (m *Mailbox[T]) Send(v T) {
	if m.ctx.Err() != nil {
		return
	}
	select {
	case m.ch.In <- v:
	case <-m.ctx.Done():
	}
}

// Receive blocks until an item is available, ctx is done or the mailbox
// closes. The boolean is false when no item was received.
func (m *Mailbox[T]) Receive(ctx context.Context) (T, bool) {
	select {
	case v, ok := <-m.ch.Out:
		return v, ok
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Len reports the approximate number of queued items.
func (m *Mailbox[T]) Len() int {
	return m.ch.Len()
}
