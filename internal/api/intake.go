// File: internal/api/intake.go
package api

import (
	"time"

	"sainik-college/internal/model"
)

// swagger:model api.AdmissionRequest
type AdmissionRequest struct {
	StudentName  string     `json:"student_name" validate:"required,max=100" example:"Arjun Singh"`
	ParentName   string     `json:"parent_name" validate:"required,max=100" example:"Rakesh Singh"`
	Email        string     `json:"email" validate:"required,max=255,email" example:"parent@example.com"`
	Phone        string     `json:"phone" validate:"required,max=20" example:"+91 98765 43210"`
	ClassApplied string     `json:"class_applied" validate:"required,max=20" example:"VI"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Address      string     `json:"address" example:"Village Rewari, Haryana"`
	Message      string     `json:"message"`
}

func (r AdmissionRequest) Model() *model.Admission {
	return &model.Admission{
		StudentName:  r.StudentName,
		ParentName:   r.ParentName,
		Email:        r.Email,
		Phone:        r.Phone,
		ClassApplied: r.ClassApplied,
		DateOfBirth:  r.DateOfBirth,
		Address:      r.Address,
		Message:      r.Message,
	}
}

// swagger:model api.ContactRequest
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100" example:"Priya"`
	Email   string `json:"email" validate:"required,max=255,email" example:"priya@example.com"`
	Phone   string `json:"phone" validate:"max=20" example:"+91 90000 00000"`
	Subject string `json:"subject" validate:"max=200" example:"Visiting hours"`
	Message string `json:"message" validate:"required" example:"When can parents visit the campus?"`
}

func (r ContactRequest) Model() *model.Contact {
	return &model.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone, Subject: r.Subject, Message: r.Message}
}
