package store

import (
	"context"
	"errors"
	"flyerboard/domain"
	"flyerboard/event"
	"flyerboard/idgen"
	"flyerboard/persistence"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// ProjectStore is the repository of the projects table. Every committed
// mutation writes a change event in the same transaction and publishes it to
// the feed after commit.
type ProjectStore struct {
	ds       *persistence.DataSourceManager
	feed     *event.Feed
	idWorker *sonyflake.Sonyflake

	Now func() time.Time
}

func NewProjectStore(ds *persistence.DataSourceManager, feed *event.Feed) *ProjectStore {
	return &ProjectStore{ds: ds, feed: feed, idWorker: idgen.NewWorker(), Now: time.Now}
}

func (s *ProjectStore) Feed() *event.Feed {
	return s.feed
}

func (s *ProjectStore) Migrate(ctx context.Context) error {
	err := s.ds.GormDB(ctx).AutoMigrate(&domain.Project{}, &event.ChangeEvent{}).Error
	return wrap("migrate", 0, err)
}

// List returns every project ordered by event date.
func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	if err := s.ds.GormDB(ctx).Order("event_date ASC").Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, wrap("list", 0, err)
	}
	return projects, nil
}

func (s *ProjectStore) Get(ctx context.Context, id types.ID) (*domain.Project, error) {
	p := domain.Project{}
	if err := s.ds.GormDB(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, wrap("get", id, notFound(err))
	}
	return &p, nil
}

// Insert assigns the id, the creation time and the initial version of p
// before writing it.
func (s *ProjectStore) Insert(ctx context.Context, p *domain.Project) error {
	p.ID = idgen.NextID(s.idWorker)
	p.CreatedAt = s.Now().Round(time.Millisecond)
	p.Version = 1
	if p.Files == nil {
		p.Files = domain.Files{}
	}
	if p.Comments == nil {
		p.Comments = domain.Comments{}
	}

	var ev *event.ChangeEvent
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		var err error
		ev, err = event.CreateEvent(p.ID, event.OpInsert, tx)
		return err
	})
	if err != nil {
		return wrap("insert", p.ID, err)
	}
	s.feed.Publish(ev)
	return nil
}

// Update overwrites the given columns. It never touches files or comments.
func (s *ProjectStore) Update(ctx context.Context, id types.ID, columns map[string]interface{}) error {
	changes := map[string]interface{}{}
	for k, v := range columns {
		if k == "files" || k == "comments" || k == "id" || k == "version" || k == "created_at" {
			continue
		}
		changes[k] = v
	}
	changes["version"] = gorm.Expr("version + ?", 1)

	var ev *event.ChangeEvent
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		r := tx.Model(&domain.Project{}).Where("id = ?", id).Updates(changes)
		if r.Error != nil {
			return r.Error
		}
		if r.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		var err error
		ev, err = event.CreateEvent(id, event.OpUpdate, tx)
		return err
	})
	if err != nil {
		return wrap("update", id, err)
	}
	s.feed.Publish(ev)
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id types.ID) error {
	var ev *event.ChangeEvent
	err := s.ds.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		r := tx.Where("id = ?", id).Delete(&domain.Project{})
		if r.Error != nil {
			return r.Error
		}
		if r.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		var err error
		ev, err = event.CreateEvent(id, event.OpDelete, tx)
		return err
	})
	if err != nil {
		return wrap("delete", id, err)
	}
	s.feed.Publish(ev)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
