package event

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Handler func(e *ChangeEvent)

// Feed fans committed change events out to in-process subscribers.
type Feed struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

func NewFeed() *Feed {
	return &Feed{handlers: map[int]Handler{}}
}

// Subscribe registers h and returns the function that removes it. The
// returned function is safe to call more than once.
func (f *Feed) Subscribe(h Handler) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = h
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.handlers, id)
			f.mu.Unlock()
		})
	}
}

// Publish calls every handler synchronously. A panicking handler is logged
// and does not stop the others.
func (f *Feed) Publish(e *ChangeEvent) {
	f.mu.RLock()
	handlers := make([]Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		invokeHandler(h, e)
	}
}

func invokeHandler(h Handler, e *ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"projectId": e.ProjectID, "op": e.Op}).
				Errorf("change handler panic: %v", r)
		}
	}()
	logrus.Debug("pre handle change event ", *e)
	h(e)
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.handlers)
}
