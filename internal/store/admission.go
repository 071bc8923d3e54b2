// File: internal/store/admission.go
package store

import (
	"context"

	"sainik-college/internal/database"
	"sainik-college/internal/model"
)

const admissionColumns = `id, student_name, parent_name, email, phone, class_applied, date_of_birth, address, message, created_at`

func scanAdmission(row interface{ Scan(...any) error }) (*model.Admission, error) {
	a := &model.Admission{}
	if err := row.Scan(
		&a.ID,
		&a.StudentName,
		&a.ParentName,
		&a.Email,
		&a.Phone,
		&a.ClassApplied,
		&a.DateOfBirth,
		&a.Address,
		&a.Message,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAdmission(ctx context.Context, db database.DB, a *model.Admission) (*model.Admission, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO admissions
		     (student_name, parent_name, email, phone, class_applied, date_of_birth, address, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		a.StudentName,
		a.ParentName,
		a.Email,
		a.Phone,
		a.ClassApplied,
		a.DateOfBirth,
		a.Address,
		a.Message,
	)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, wrapErr("CreateAdmission", err)
	}
	return a, nil
}

func ListAdmissions(ctx context.Context, db database.DB) ([]model.Admission, error) {
	rows, err := db.Query(ctx,
		`SELECT `+admissionColumns+` FROM admissions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, wrapErr("ListAdmissions", err)
	}
	defer rows.Close()

	list := []model.Admission{}
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			return nil, wrapErr("ListAdmissions", err)
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListAdmissions", err)
	}
	return list, nil
}

func GetAdmissionByID(ctx context.Context, db database.DB, id int) (*model.Admission, error) {
	row := db.QueryRow(ctx,
		`SELECT `+admissionColumns+` FROM admissions WHERE id = $1`,
		id,
	)
	a, err := scanAdmission(row)
	if err != nil {
		return nil, wrapErr("GetAdmissionByID", err)
	}
	return a, nil
}

func DeleteAdmission(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM admissions WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteAdmission", err)
	}
	return expectOne("DeleteAdmission", tag)
}
