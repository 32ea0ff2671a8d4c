package domain

import (
	"strings"
	"time"

	"github.com/fundwit/go-commons/types"
)

type UserRole string

const (
	RoleCompany = UserRole("company")
	RoleAgency  = UserRole("agency")
)

func (r UserRole) Valid() bool {
	return r == RoleCompany || r == RoleAgency
}

// Project is one flyer production request. Files and Comments are kept as
// JSON arrays on the row and only mutated through the store procedures.
type Project struct {
	ID types.ID `json:"id" gorm:"primary_key;auto_increment:false"`

	EventName        string `json:"eventName" sql:"type:VARCHAR(255) NOT NULL"`
	EventDate        string `json:"eventDate" sql:"type:VARCHAR(10) NOT NULL" gorm:"index:idx_projects_event_date"`
	EventTime        string `json:"eventTime"`
	EventLocation    string `json:"eventLocation"`
	PrintCount       *int   `json:"printCount"`
	DeliveryHopeDate string `json:"deliveryHopeDate" sql:"type:VARCHAR(10)"`
	NumberOfRecruits *int   `json:"numberOfRecruits"`
	Notes            string `json:"notes" sql:"type:TEXT"`

	IsUrgent       bool          `json:"isUrgent"`
	FlyerNotNeeded bool          `json:"flyerNotNeeded"`
	Status         ProjectStatus `json:"status" sql:"type:VARCHAR(32) NOT NULL"`

	CreatedAt time.Time `json:"createdAt" gorm:"precision:3" sql:"NOT NULL"`

	Files    Files    `json:"files" sql:"type:TEXT"`
	Comments Comments `json:"comments" sql:"type:TEXT"`

	Version int64 `json:"-" sql:"NOT NULL"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectFile struct {
	Name       string          `json:"name"`
	URL        string          `json:"url"`
	UploadedAt types.Timestamp `json:"uploadedAt"`
}

type Comment struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Timestamp types.Timestamp `json:"timestamp"`
	UserName  string          `json:"userName"`
	Role      UserRole        `json:"role"`
}

type ProjectCreation struct {
	EventName        string `json:"eventName" validate:"required,max=255"`
	EventDate        string `json:"eventDate" validate:"required,isodate"`
	EventTime        string `json:"eventTime"`
	EventLocation    string `json:"eventLocation"`
	PrintCount       *int   `json:"printCount" validate:"omitempty,gte=0"`
	DeliveryHopeDate string `json:"deliveryHopeDate" validate:"isodate"`
	NumberOfRecruits *int   `json:"numberOfRecruits" validate:"omitempty,gte=0"`
	Notes            string `json:"notes"`
	IsUrgent         bool   `json:"isUrgent"`
	FlyerNotNeeded   bool   `json:"flyerNotNeeded"`
}

// NewProject builds the row for a creation request. Status always starts at
// InitialStatus and both arrays start empty.
func (c *ProjectCreation) NewProject() Project {
	return Project{
		EventName:        strings.TrimSpace(c.EventName),
		EventDate:        c.EventDate,
		EventTime:        c.EventTime,
		EventLocation:    c.EventLocation,
		PrintCount:       c.PrintCount,
		DeliveryHopeDate: c.DeliveryHopeDate,
		NumberOfRecruits: c.NumberOfRecruits,
		Notes:            c.Notes,
		IsUrgent:         c.IsUrgent,
		FlyerNotNeeded:   c.FlyerNotNeeded,
		Status:           InitialStatus,
		Files:            Files{},
		Comments:         Comments{},
	}
}

// ProjectUpdating is a sparse patch: nil fields are left untouched.
type ProjectUpdating struct {
	EventName        *string        `json:"eventName" validate:"omitempty,max=255"`
	EventDate        *string        `json:"eventDate" validate:"omitempty,min=1,isodate"`
	EventTime        *string        `json:"eventTime"`
	EventLocation    *string        `json:"eventLocation"`
	PrintCount       *int           `json:"printCount" validate:"omitempty,gte=0"`
	DeliveryHopeDate *string        `json:"deliveryHopeDate" validate:"omitempty,isodate"`
	NumberOfRecruits *int           `json:"numberOfRecruits" validate:"omitempty,gte=0"`
	Notes            *string        `json:"notes"`
	IsUrgent         *bool          `json:"isUrgent"`
	FlyerNotNeeded   *bool          `json:"flyerNotNeeded"`
	Status           *ProjectStatus `json:"status" validate:"omitempty,projectstatus"`
}

// Columns converts the patch into a column map. Setting flyerNotNeeded to true
// forces the status to StatusDone, whatever status the patch carries.
func (u *ProjectUpdating) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if u.EventName != nil {
		columns["event_name"] = strings.TrimSpace(*u.EventName)
	}
	if u.EventDate != nil {
		columns["event_date"] = *u.EventDate
	}
	if u.EventTime != nil {
		columns["event_time"] = *u.EventTime
	}
	if u.EventLocation != nil {
		columns["event_location"] = *u.EventLocation
	}
	if u.PrintCount != nil {
		columns["print_count"] = *u.PrintCount
	}
	if u.DeliveryHopeDate != nil {
		columns["delivery_hope_date"] = *u.DeliveryHopeDate
	}
	if u.NumberOfRecruits != nil {
		columns["number_of_recruits"] = *u.NumberOfRecruits
	}
	if u.Notes != nil {
		columns["notes"] = *u.Notes
	}
	if u.IsUrgent != nil {
		columns["is_urgent"] = *u.IsUrgent
	}
	if u.FlyerNotNeeded != nil {
		columns["flyer_not_needed"] = *u.FlyerNotNeeded
	}
	if u.Status != nil {
		columns["status"] = string(*u.Status)
	}
	if u.FlyerNotNeeded != nil && *u.FlyerNotNeeded {
		columns["status"] = string(StatusDone)
	}
	return columns
}

// FindFile returns the index of the file with the given name, or -1.
func (p *Project) FindFile(name string) int {
	for i, f := range p.Files {
		if f.Name == name {
			return i
		}
	}
	return -1
}
