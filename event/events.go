package event

import (
	"flyerboard/idgen"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	idWorker = idgen.NewWorker()

	EventPersistCreateFunc = eventPersistCreate
)

// CreateEvent writes a change record with the transaction of the change itself,
// so the record only exists when the change is committed.
func CreateEvent(projectID types.ID, op Op, tx *gorm.DB) (*ChangeEvent, error) {
	record := ChangeEvent{
		ID:          idgen.NextID(idWorker),
		SourceTable: SourceTableProjects,
		ProjectID:   projectID,
		Op:          op,
		Timestamp:   time.Now(),
	}
	if err := EventPersistCreateFunc(&record, tx); err != nil {
		return nil, err
	}
	return &record, nil
}

func eventPersistCreate(record *ChangeEvent, db *gorm.DB) error {
	return db.Create(record).Error
}
