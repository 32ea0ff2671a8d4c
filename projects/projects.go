package projects

import (
	"context"
	"flyerboard/client/blob"
	"flyerboard/domain"
	"flyerboard/event"
	"flyerboard/store"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service is the data access layer used by the board and the HTTP handlers.
// Mutation failures are logged here and also returned, callers decide whether
// to surface them.
type Service struct {
	store      *store.ProjectStore
	bucket     blob.Bucket
	eventNames []string

	Now func() time.Time
}

func NewService(s *store.ProjectStore, bucket blob.Bucket, eventNames []string) *Service {
	return &Service{store: s, bucket: bucket, eventNames: append([]string(nil), eventNames...), Now: time.Now}
}

// EventNames returns the configured event name ordering.
func (s *Service) EventNames() []string {
	return append([]string(nil), s.eventNames...)
}

// ListProjects returns the full list sorted by event date, then by the
// configured event name order. Errors are returned unlogged.
func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortProjects(list, s.eventNames)
	return list, nil
}

func (s *Service) GetProject(ctx context.Context, id types.ID) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) CreateProject(ctx context.Context, c *domain.ProjectCreation) (types.ID, error) {
	if err := domain.Validate(c); err != nil {
		return 0, err
	}
	p := c.NewProject()
	if err := s.store.Insert(ctx, &p); err != nil {
		logrus.WithFields(logrus.Fields{"eventName": p.EventName, "eventDate": p.EventDate}).
			Errorf("failed to create project: %v", err)
		return 0, err
	}
	return p.ID, nil
}

func (s *Service) UpdateProject(ctx context.Context, id types.ID, u *domain.ProjectUpdating) error {
	if id == 0 {
		return domain.ErrMissingProject
	}
	if err := domain.Validate(u); err != nil {
		return err
	}
	columns := u.Columns()
	if len(columns) == 0 {
		return nil
	}
	if err := s.store.Update(ctx, id, columns); err != nil {
		logrus.WithField("projectId", id).Errorf("failed to update project: %v", err)
		return err
	}
	return nil
}

func (s *Service) UpdateProjectStatus(ctx context.Context, id types.ID, status domain.ProjectStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	return s.UpdateProject(ctx, id, &domain.ProjectUpdating{Status: &status})
}

// DeleteProject removes the blobs of every attached file, then the row.
// Blob failures are logged and do not stop the row deletion.
func (s *Service) DeleteProject(ctx context.Context, id types.ID) error {
	if id == 0 {
		return domain.ErrMissingProject
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		logrus.WithField("projectId", id).Errorf("failed to load project for deletion: %v", err)
		return err
	}
	for _, f := range p.Files {
		s.deleteObject(ctx, id, f.Name)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		logrus.WithField("projectId", id).Errorf("failed to delete project: %v", err)
		return err
	}
	return nil
}

// AddFileToProject uploads content under {projectId}/{fileName}, replacing any
// previous object, and records it on the project. A failed upload leaves the
// file list untouched.
func (s *Service) AddFileToProject(ctx context.Context, id types.ID, fileName string, content io.Reader) (*domain.ProjectFile, error) {
	if id == 0 {
		return nil, domain.ErrMissingProject
	}
	if !ValidFileName(fileName) {
		return nil, domain.ErrInvalidName
	}
	fields := logrus.Fields{"projectId": id, "fileName": fileName}
	if _, err := s.store.Get(ctx, id); err != nil {
		logrus.WithFields(fields).Errorf("failed to load project for upload: %v", err)
		return nil, err
	}

	key := blob.ObjectKey(id.String(), fileName)
	if err := s.bucket.PutObject(ctx, key, content); err != nil {
		logrus.WithFields(fields).Errorf("failed to upload file: %v", err)
		return nil, err
	}

	f := domain.ProjectFile{Name: fileName, URL: s.bucket.ObjectURL(key), UploadedAt: types.Timestamp(s.Now())}
	if err := s.store.AddFileToProject(ctx, id, f); err != nil {
		logrus.WithFields(fields).Errorf("failed to add file to project: %v", err)
		return nil, err
	}
	return &f, nil
}

// DeleteFileFromProject removes the blob on a best-effort basis, then the entry.
func (s *Service) DeleteFileFromProject(ctx context.Context, id types.ID, fileName string) error {
	if id == 0 {
		return domain.ErrMissingProject
	}
	if !ValidFileName(fileName) {
		return domain.ErrInvalidName
	}
	s.deleteObject(ctx, id, fileName)
	if err := s.store.DeleteFileFromProject(ctx, id, fileName); err != nil {
		logrus.WithFields(logrus.Fields{"projectId": id, "fileName": fileName}).
			Errorf("failed to delete file from project: %v", err)
		return err
	}
	return nil
}

func (s *Service) AddCommentToProject(ctx context.Context, id types.ID, text, userName string, role domain.UserRole) (*domain.Comment, error) {
	if id == 0 {
		return nil, domain.ErrMissingProject
	}
	if strings.TrimSpace(text) == "" || strings.TrimSpace(userName) == "" {
		return nil, domain.ErrEmptyComment
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	now := s.Now()
	c := domain.Comment{
		ID:        NewCommentID(now),
		Text:      strings.TrimSpace(text),
		Timestamp: types.Timestamp(now),
		UserName:  strings.TrimSpace(userName),
		Role:      role,
	}
	if err := s.store.AddCommentToProject(ctx, id, c); err != nil {
		logrus.WithFields(logrus.Fields{"projectId": id, "commentId": c.ID}).
			Errorf("failed to add comment: %v", err)
		return nil, err
	}
	return &c, nil
}

// Subscribe registers h for every committed project change.
func (s *Service) Subscribe(h event.Handler) func() {
	return s.store.Feed().Subscribe(h)
}

func (s *Service) deleteObject(ctx context.Context, id types.ID, fileName string) {
	if err := s.bucket.DeleteObject(ctx, blob.ObjectKey(id.String(), fileName)); err != nil {
		logrus.WithFields(logrus.Fields{"projectId": id, "fileName": fileName}).
			Warnf("failed to delete file object: %v", err)
	}
}

// NewCommentID builds "comm_<unixMillis>_<random>".
func NewCommentID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("comm_%d_%s", now.UnixNano()/int64(time.Millisecond), suffix)
}

// ValidFileName rejects names that would escape the project's key prefix.
func ValidFileName(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
