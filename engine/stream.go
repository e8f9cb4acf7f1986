package engine

import (
	"context"
)

type streamKind int8

const (
	streamEmpty streamKind = iota
	streamCons
	streamSuspend
	streamError
)

var emptyStream = &Stream{kind: streamEmpty}

// Stream is a lazy, possibly infinite sequence of states.
// A stream node is either empty, a state followed by a delayed tail, a suspended computation of another node,
// or an error. Delayed computations are evaluated at most once.
type Stream struct {
	kind streamKind

	head State
	err  error

	// delayed tail of cons, or the suspended node.
	delayed func() *Stream
	forced  *Stream
}

// Empty returns a stream without any states.
func Empty() *Stream {
	return emptyStream
}

// Unit returns a stream of the single state s.
func Unit(s State) *Stream {
	return &Stream{kind: streamCons, head: s, forced: emptyStream}
}

// Prepend returns a stream of s followed by the stream tail returns.
func Prepend(s State, tail func() *Stream) *Stream {
	return &Stream{kind: streamCons, head: s, delayed: tail}
}

// Suspend delays the computation of a stream.
func Suspend(k func() *Stream) *Stream {
	return &Stream{kind: streamSuspend, delayed: k}
}

// Error returns a stream which terminates the search with err.
func Error(err error) *Stream {
	return &Stream{kind: streamError, err: err}
}

// force evaluates the delayed computation once and returns the result.
func (s *Stream) force() *Stream {
	if s.delayed != nil {
		s.forced, s.delayed = s.delayed(), nil
		if s.forced == nil {
			s.forced = emptyStream
		}
	}
	if s.forced == nil {
		return emptyStream
	}
	return s.forced
}

// realize forces suspensions until it reaches an empty, cons, or error node. (i.e. trampoline)
func (s *Stream) realize(ctx context.Context) (*Stream, error) {
	for s.kind == streamSuspend {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s = s.force()
	}
	return s, nil
}

// merge interleaves s1 and s2. The operands swap on every step so that neither starves the other.
func merge(s1, s2 *Stream) *Stream {
	switch s1.kind {
	case streamEmpty:
		return s2
	case streamCons:
		return Prepend(s1.head, func() *Stream {
			return merge(s2, s1.force())
		})
	case streamSuspend:
		return Suspend(func() *Stream {
			return merge(s2, s1.force())
		})
	default:
		return s1
	}
}

// bind applies g to every state of s and interleaves the resulting streams.
func bind(s *Stream, g Goal) *Stream {
	switch s.kind {
	case streamEmpty:
		return s
	case streamCons:
		return merge(g.call(s.head), Suspend(func() *Stream {
			return bind(s.force(), g)
		}))
	case streamSuspend:
		return Suspend(func() *Stream {
			return bind(s.force(), g)
		})
	default:
		return s
	}
}
