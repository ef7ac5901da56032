package backend

import "sync"

// PushStream turns a callback-driven producer into a TokenStream. The
// producer calls Push for each fragment and Finish exactly once when done.
type PushStream struct {
	ch       chan string
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	err      error
}

func NewPushStream() *PushStream {
	return &PushStream{
		ch:   make(chan string),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Push hands tok to the consumer. It returns false once the consumer has
// closed the stream; the producer should then stop generating.
func (s *PushStream) Push(tok string) bool {
	select {
	case s.ch <- tok:
		return true
	case <-s.stop:
		return false
	}
}

// Finish ends the stream. err is reported by Err.
func (s *PushStream) Finish(err error) {
	s.err = err
	close(s.done)
}

func (s *PushStream) Next() (string, bool) {
	select {
	case tok := <-s.ch:
		return tok, true
	case <-s.done:
		return "", false
	}
}

func (s *PushStream) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Close signals the producer and waits for it to return, which happens at
// its next Push.
func (s *PushStream) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
