package event_test

import (
	"context"
	"errors"
	"flyerboard/event"
	"flyerboard/testinfra"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestCreateEvent(t *testing.T) {
	RegisterTestingT(t)

	var testDatabase *testinfra.TestDatabase
	setup := func() {
		testDatabase = testinfra.StartTestDatabase("flyerboard")
		Expect(testDatabase.DS.GormDB(context.Background()).AutoMigrate(&event.ChangeEvent{}).Error).To(BeNil())
	}
	teardown := func() {
		testinfra.StopTestDatabase(testDatabase)
	}

	t.Run("should persist change event within transaction", func(t *testing.T) {
		setup()
		defer teardown()

		begin := time.Now()
		var created *event.ChangeEvent
		err := testDatabase.DS.GormDB(context.Background()).Transaction(func(tx *gorm.DB) error {
			var err error
			created, err = event.CreateEvent(100, event.OpUpdate, tx)
			return err
		})
		Expect(err).To(BeNil())
		Expect(created.ID).ToNot(BeZero())

		records := []event.ChangeEvent{}
		Expect(testDatabase.DS.GormDB(context.Background()).Find(&records).Error).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0].ID).To(Equal(created.ID))
		Expect(records[0].ProjectID).To(Equal(types.ID(100)))
		Expect(records[0].Op).To(Equal(event.OpUpdate))
		Expect(records[0].SourceTable).To(Equal(event.SourceTableProjects))
		Expect(records[0].Timestamp.Add(time.Millisecond).After(begin)).To(BeTrue())
	})

	t.Run("should not persist change event when transaction is rolled back", func(t *testing.T) {
		setup()
		defer teardown()

		err := testDatabase.DS.GormDB(context.Background()).Transaction(func(tx *gorm.DB) error {
			if _, err := event.CreateEvent(100, event.OpDelete, tx); err != nil {
				return err
			}
			return errors.New("rollback")
		})
		Expect(err).To(MatchError("rollback"))

		var count int
		Expect(testDatabase.DS.GormDB(context.Background()).Model(&event.ChangeEvent{}).Count(&count).Error).To(BeNil())
		Expect(count).To(BeZero())
	})

	t.Run("should return error when persisting fails", func(t *testing.T) {
		original := event.EventPersistCreateFunc
		defer func() { event.EventPersistCreateFunc = original }()
		event.EventPersistCreateFunc = func(record *event.ChangeEvent, db *gorm.DB) error {
			return errors.New("some error")
		}
		created, err := event.CreateEvent(100, event.OpInsert, nil)
		Expect(err).To(MatchError("some error"))
		Expect(created).To(BeNil())
	})
}
