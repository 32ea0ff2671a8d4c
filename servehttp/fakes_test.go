package servehttp_test

import (
	"context"
	"errors"
	"flyerboard/board"
	"flyerboard/domain"
	"io"
	"sync"

	"github.com/fundwit/go-commons/types"
)

var errBackend = errors.New("backend down")

type call struct {
	op   string
	id   types.ID
	args []interface{}
}

type fakeService struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeService) record(op string, id types.ID, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, id: id, args: args})
}

func (f *fakeService) CreateProject(ctx context.Context, c *domain.ProjectCreation) (types.ID, error) {
	if err := domain.Validate(c); err != nil {
		return 0, err
	}
	f.record("create", 0, c.EventName)
	if f.err != nil {
		return 0, f.err
	}
	return 100, nil
}

func (f *fakeService) UpdateProject(ctx context.Context, id types.ID, u *domain.ProjectUpdating) error {
	f.record("update", id, u.Columns())
	return f.err
}

func (f *fakeService) UpdateProjectStatus(ctx context.Context, id types.ID, status domain.ProjectStatus) error {
	f.record("status", id, status)
	return f.err
}

func (f *fakeService) DeleteProject(ctx context.Context, id types.ID) error {
	f.record("delete", id)
	return f.err
}

func (f *fakeService) AddFileToProject(ctx context.Context, id types.ID, fileName string, content io.Reader) (*domain.ProjectFile, error) {
	data, _ := io.ReadAll(content)
	f.record("addFile", id, fileName, string(data))
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ProjectFile{Name: fileName, URL: "https://files.example.com/" + id.String() + "/" + fileName}, nil
}

func (f *fakeService) DeleteFileFromProject(ctx context.Context, id types.ID, fileName string) error {
	f.record("deleteFile", id, fileName)
	return f.err
}

func (f *fakeService) AddCommentToProject(ctx context.Context, id types.ID, text, userName string, role domain.UserRole) (*domain.Comment, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	f.record("comment", id, text, userName, role)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Comment{ID: "comm_1_abcdefghi", Text: text, UserName: userName, Role: role}, nil
}

func (f *fakeService) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeBoard struct {
	state    board.State
	versions chan uint64
	waited   bool
}

func (b *fakeBoard) Cards() []board.ProjectCard {
	cards := []board.ProjectCard{}
	for _, p := range b.state.Projects {
		cards = append(cards, board.NewProjectCard(p))
	}
	return cards
}

func (b *fakeBoard) Snapshot() board.State {
	return b.state
}

func (b *fakeBoard) Fatal() error {
	return b.state.Fatal
}

func (b *fakeBoard) View(fragment string) board.View {
	if board.Resolve(fragment).Kind == board.RouteNew {
		return board.View{Kind: board.ViewNew, Version: b.state.Version, InitialStatus: domain.InitialStatus}
	}
	return board.View{Kind: board.ViewList, Version: b.state.Version, Projects: b.Cards()}
}

func (b *fakeBoard) Listen() (<-chan uint64, func()) {
	if b.versions == nil {
		b.versions = make(chan uint64)
		close(b.versions)
	}
	return b.versions, func() {}
}

func (b *fakeBoard) WaitFor(ctx context.Context, id types.ID) bool {
	b.waited = true
	for _, p := range b.state.Projects {
		if p.ID == id {
			return true
		}
	}
	return false
}
