package event

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

type Op string

const (
	OpInsert = Op("INSERT")
	OpUpdate = Op("UPDATE")
	OpDelete = Op("DELETE")
)

const SourceTableProjects = "projects"

// ChangeEvent records one committed change of a project row. Subscribers only
// use it as a signal to reload the whole list.
type ChangeEvent struct {
	ID          types.ID  `json:"id" gorm:"primary_key;auto_increment:false"`
	SourceTable string    `json:"sourceTable" sql:"type:VARCHAR(64) NOT NULL"`
	ProjectID   types.ID  `json:"projectId" gorm:"index:idx_project_events_project_id"`
	Op          Op        `json:"op" sql:"type:VARCHAR(16) NOT NULL"`
	Timestamp   time.Time `json:"timestamp" gorm:"precision:6"`
}

func (ChangeEvent) TableName() string {
	return "project_events"
}
