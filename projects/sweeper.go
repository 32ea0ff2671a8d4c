package projects

import (
	"context"
	"flyerboard/client/blob"
	"strings"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultSweepSpec = "0 30 3 * * *"

// Sweeper removes blobs that no project references any more: objects whose
// project row is gone, and objects missing from their project's files.
// Objects younger than MinAge are left alone so an upload whose file entry
// is not written yet is never taken.
type Sweeper struct {
	service *Service
	bucket  blob.Bucket
	crontab *cron.Cron

	MinAge time.Duration
	Now    func() time.Time
}

func NewSweeper(service *Service, bucket blob.Bucket) *Sweeper {
	return &Sweeper{service: service, bucket: bucket, MinAge: time.Hour, Now: time.Now}
}

func (w *Sweeper) Start(spec string) error {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	crontab := cron.New(cron.WithSeconds())
	if _, err := crontab.AddFunc(spec, func() {
		if _, err := w.Sweep(context.Background()); err != nil {
			logrus.Errorf("orphan sweep: %v", err)
		}
	}); err != nil {
		return err
	}
	w.crontab = crontab
	crontab.Start()
	return nil
}

func (w *Sweeper) Stop() {
	if w.crontab != nil {
		<-w.crontab.Stop().Done()
		w.crontab = nil
	}
}

// Sweep runs one pass and returns the number of deleted objects.
func (w *Sweeper) Sweep(ctx context.Context) (int, error) {
	list, err := w.service.ListProjects(ctx)
	if err != nil {
		return 0, err
	}
	referenced := map[string]map[string]bool{}
	for _, p := range list {
		names := map[string]bool{}
		for _, f := range p.Files {
			names[f.Name] = true
		}
		referenced[p.ID.String()] = names
	}

	objects, err := w.bucket.ListObjects(ctx, "")
	if err != nil {
		return 0, err
	}

	deleted := 0
	now := w.Now()
	for _, o := range objects {
		if now.Sub(o.LastModified) < w.MinAge {
			continue
		}
		idx := strings.Index(o.Key, "/")
		if idx <= 0 {
			continue
		}
		projectID, fileName := o.Key[:idx], o.Key[idx+1:]
		if names, found := referenced[projectID]; found && names[fileName] {
			continue
		}
		if err := w.bucket.DeleteObject(ctx, o.Key); err != nil {
			logrus.WithField("objectKey", o.Key).Warnf("orphan sweep: failed to delete object: %v", err)
			continue
		}
		logrus.WithField("objectKey", o.Key).Info("orphan sweep: object deleted")
		deleted++
	}
	return deleted, nil
}
