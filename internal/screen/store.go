package screen

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

// ErrStopped is returned by Dispatch and Snapshot once the store's loop has exited.
var ErrStopped = errors.New("screen store stopped")

// maxFollowUps bounds the chain of inner actions one dispatch may trigger.
const maxFollowUps = 16

type request struct {
	action Action // nil only reads a snapshot
	view   func(*State)
	reply  chan Snapshot
}

// Store owns a State on a single goroutine. Every action is reduced to
// completion, including its follow-ups, before the next one is read.
type Store struct {
	env      Env
	state    *State
	requests chan request
	done     chan struct{}
	log      *zap.Logger
}

// NewStore returns a store; call Run to start processing actions.
func NewStore(env Env, goals Goals, ev *nutrient.Evaluator) *Store {
	return &Store{
		env:      env,
		state:    NewState(goals, ev),
		requests: make(chan request),
		done:     make(chan struct{}),
		log:      env.logger().Named("screen"),
	}
}

// Run processes actions until ctx is cancelled. It must be called once.
func (s *Store) Run(ctx context.Context) error {
	defer close(s.done)
	s.log.Debug("store started")
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("store stopped")
			return nil
		case req := <-s.requests:
			if req.action != nil {
				s.apply(req.action)
			}
			if req.view != nil {
				req.view(s.state)
			}
			req.reply <- s.state.Snapshot(s.env)
		}
	}
}

func (s *Store) apply(a Action) {
	for i := 0; a != nil; i++ {
		if i == maxFollowUps {
			s.log.Error("dropping follow-up action chain", zap.String("action", fmt.Sprintf("%T", a)))
			return
		}
		s.log.Debug("reduce", zap.String("action", fmt.Sprintf("%T", a)))
		a = Reduce(s.state, a, s.env)
	}
}

// Dispatch sends a to the store and returns the state after it was reduced.
func (s *Store) Dispatch(ctx context.Context, a Action) (Snapshot, error) {
	if a == nil {
		return Snapshot{}, errors.New("dispatch: nil action")
	}
	return s.send(ctx, request{action: a})
}

// Snapshot returns the current state without changing it.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.send(ctx, request{})
}

// View runs fn on the store goroutine with the live state. fn must not
// modify s or keep references into it after returning.
func (s *Store) View(ctx context.Context, fn func(s *State)) error {
	_, err := s.send(ctx, request{view: fn})
	return err
}

func (s *Store) send(ctx context.Context, req request) (Snapshot, error) {
	req.reply = make(chan Snapshot, 1)
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-s.done:
		return Snapshot{}, ErrStopped
	}
	// The loop always replies once it has taken the request, and the reply
	// channel is buffered, so waiting here can't leak the store goroutine.
	select {
	case snap := <-req.reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Env returns the store's environment.
func (s *Store) Env() Env {
	return s.env
}
