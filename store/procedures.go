package store

import (
	"context"
	"errors"
	"flyerboard/domain"
	"flyerboard/event"
	"flyerboard/persistence"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// ProcedureRetryBackoff is the pause between compare-and-swap attempts. A
// procedure retries until it succeeds or its context is done.
var ProcedureRetryBackoff = 5 * time.Millisecond

type arrayMutation func(p *domain.Project) map[string]interface{}

// AddFileToProject appends f, or replaces in place the entry with the same name.
func (s *ProjectStore) AddFileToProject(ctx context.Context, projectID types.ID, f domain.ProjectFile) error {
	return s.mutateArrays(ctx, "add_file_to_project", projectID, func(p *domain.Project) map[string]interface{} {
		files := append(domain.Files{}, p.Files...)
		if i := p.FindFile(f.Name); i >= 0 {
			files[i] = f
		} else {
			files = append(files, f)
		}
		return map[string]interface{}{"files": files}
	})
}

func (s *ProjectStore) AddCommentToProject(ctx context.Context, projectID types.ID, c domain.Comment) error {
	return s.mutateArrays(ctx, "add_comment_to_project", projectID, func(p *domain.Project) map[string]interface{} {
		comments := append(domain.Comments{}, p.Comments...)
		return map[string]interface{}{"comments": append(comments, c)}
	})
}

// DeleteFileFromProject removes every entry named fileName. Removing a name
// that is absent still succeeds.
func (s *ProjectStore) DeleteFileFromProject(ctx context.Context, projectID types.ID, fileName string) error {
	return s.mutateArrays(ctx, "delete_file_from_project", projectID, func(p *domain.Project) map[string]interface{} {
		files := domain.Files{}
		for _, f := range p.Files {
			if f.Name != fileName {
				files = append(files, f)
			}
		}
		return map[string]interface{}{"files": files}
	})
}

func (s *ProjectStore) mutateArrays(ctx context.Context, op string, projectID types.ID, mutate arrayMutation) error {
	for attempt := 1; ; attempt++ {
		ev, err := s.tryMutateArrays(ctx, projectID, mutate)
		if err == nil {
			s.feed.Publish(ev)
			return nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return wrap(op, projectID, err)
		}
		logrus.WithFields(logrus.Fields{"op": op, "projectId": projectID, "attempt": attempt}).
			Debug("project row changed concurrently, retrying")

		select {
		case <-ctx.Done():
			return wrap(op, projectID, ErrConcurrentModification)
		case <-time.After(ProcedureRetryBackoff):
		}
	}
}

func (s *ProjectStore) tryMutateArrays(ctx context.Context, projectID types.ID, mutate arrayMutation) (*event.ChangeEvent, error) {
	var ev *event.ChangeEvent
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		p := domain.Project{}
		if err := lockForUpdate(tx).Where("id = ?", projectID).First(&p).Error; err != nil {
			return notFound(err)
		}

		columns := mutate(&p)
		columns["version"] = p.Version + 1
		r := tx.Model(&domain.Project{}).Where("id = ? AND version = ?", projectID, p.Version).Updates(columns)
		if r.Error != nil {
			return r.Error
		}
		if r.RowsAffected != 1 {
			return ErrConcurrentModification
		}

		var err error
		ev, err = event.CreateEvent(projectID, event.OpUpdate, tx)
		return err
	})
	return ev, err
}

// lockForUpdate makes concurrent procedures on MySQL queue on the row lock
// instead of failing the version check. SQLite serializes writers already.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialect().GetName() == persistence.DriverMysql {
		return tx.Set("gorm:query_option", "FOR UPDATE")
	}
	return tx
}
