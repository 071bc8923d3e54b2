// File: internal/model/admission.go
package model

import "time"

type Admission struct {
	ID           int        `db:"id" json:"id"`
	StudentName  string     `db:"student_name" json:"student_name"`
	ParentName   string     `db:"parent_name" json:"parent_name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	ClassApplied string     `db:"class_applied" json:"class_applied"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address      string     `db:"address" json:"address"`
	Message      string     `db:"message" json:"message"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
