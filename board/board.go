package board

import (
	"context"
	"errors"
	"flyerboard/domain"
	"flyerboard/event"
	"sync"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var ErrNotMounted = errors.New("board is not mounted")

// Source is what the board reads from.
type Source interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	Subscribe(h event.Handler) func()
	EventNames() []string
}

// State is a consistent copy of the board at one applied version.
type State struct {
	Version  uint64
	Projects []domain.Project
	Fatal    error
}

// Board holds the live project list. Every fetch takes a ticket and a
// completed fetch is applied only when its ticket is newer than the last
// applied one. Once a fetch fails the board stays fatal.
type Board struct {
	source Source

	RefreshTimeout time.Duration

	mu          sync.Mutex
	mounted     bool
	nextTicket  uint64
	applied     uint64
	projects    []domain.Project
	fatal       error
	unsubscribe func()
	cancel      context.CancelFunc
	ctx         context.Context
	listeners   map[int]chan uint64
	nextListen  int
	inflight    sync.WaitGroup
}

func New(source Source) *Board {
	return &Board{source: source, RefreshTimeout: 30 * time.Second, listeners: map[int]chan uint64{}}
}

// Mount performs the initial fetch and subscribes to project changes; every
// change triggers a full re-fetch. A failed initial fetch is returned and
// leaves the board fatal.
func (b *Board) Mount(ctx context.Context) error {
	b.mu.Lock()
	if b.mounted {
		b.mu.Unlock()
		return nil
	}
	b.mounted = true
	b.ctx, b.cancel = context.WithCancel(context.Background())
	ticket := b.takeTicketLocked()
	b.mu.Unlock()

	unsubscribe := b.source.Subscribe(func(e *event.ChangeEvent) {
		b.refreshAsync()
	})
	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()

	list, err := b.source.ListProjects(ctx)
	b.apply(ticket, list, err)
	return err
}

// Unmount removes the subscription. Fetches still in flight are discarded.
func (b *Board) Unmount() {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = false
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.cancel()
	for id, ch := range b.listeners {
		close(ch)
		delete(b.listeners, id)
	}
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	b.inflight.Wait()
}

// Refresh fetches the whole list once and applies it unless a newer fetch
// has been applied in the meantime.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return ErrNotMounted
	}
	ticket := b.takeTicketLocked()
	b.mu.Unlock()

	list, err := b.source.ListProjects(ctx)
	b.apply(ticket, list, err)
	return err
}

func (b *Board) refreshAsync() {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	parent := b.ctx
	b.inflight.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(parent, b.RefreshTimeout)
		defer cancel()
		if err := b.Refresh(ctx); err != nil && !errors.Is(err, ErrNotMounted) {
			logrus.Errorf("board refresh failed: %v", err)
		}
	}()
}

func (b *Board) takeTicketLocked() uint64 {
	b.nextTicket++
	return b.nextTicket
}

func (b *Board) apply(ticket uint64, list []domain.Project, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.mounted {
		logrus.WithField("ticket", ticket).Debug("board fetch completed after unmount, discarded")
		return
	}
	if ticket <= b.applied {
		logrus.WithFields(logrus.Fields{"ticket": ticket, "applied": b.applied}).Debug("stale board fetch discarded")
		return
	}
	b.applied = ticket
	if err != nil {
		b.fatal = err
	} else {
		b.projects = list
	}

	for _, ch := range b.listeners {
		// keep only the latest version for slow listeners
		select {
		case <-ch:
		default:
		}
		ch <- ticket
	}
}

func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		Version:  b.applied,
		Projects: append([]domain.Project(nil), b.projects...),
		Fatal:    b.fatal,
	}
}

// Fatal returns the error of the failed fetch, if any.
func (b *Board) Fatal() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fatal
}

// Listen returns a channel receiving the version of every applied fetch. The
// channel is closed by the returned cancel function or by Unmount.
func (b *Board) Listen() (<-chan uint64, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan uint64, 1)
	if !b.mounted {
		close(ch)
		return ch, func() {}
	}
	id := b.nextListen
	b.nextListen++
	b.listeners[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, found := b.listeners[id]; found {
			close(c)
			delete(b.listeners, id)
		}
	}
}

// WaitFor blocks until the board contains the project or ctx is done.
func (b *Board) WaitFor(ctx context.Context, id types.ID) bool {
	ch, cancel := b.Listen()
	defer cancel()
	for {
		if b.contains(id) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-ch:
			if !ok {
				return b.contains(id)
			}
		}
	}
}

func (b *Board) contains(id types.ID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

// View resolves fragment against the current state.
func (b *Board) View(fragment string) View {
	return buildView(b.Snapshot(), Resolve(fragment), b.source.EventNames())
}

// Cards returns the current list decorated for display.
func (b *Board) Cards() []ProjectCard {
	return cards(b.Snapshot().Projects)
}
