package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Employee is owned by the organization module; leave and attendance only read it.
type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID           *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DesignationID    *uuid.UUID `gorm:"type:uuid;index"`
	FullName         string     `gorm:"type:varchar(150);not null"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Gender           *string    `gorm:"type:varchar(10)"`
	JoiningDate      *time.Time `gorm:"type:date"`
	ProbationEndDate *time.Time `gorm:"type:date"`
	IsActive         bool       `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// OnProbationAt reports whether day is on or before the probation end date.
func (e Employee) OnProbationAt(day time.Time) bool {
	if e.ProbationEndDate == nil {
		return false
	}
	return !day.After(*e.ProbationEndDate)
}
