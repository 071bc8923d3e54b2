// File: internal/store/contact.go
package store

import (
	"context"

	"sainik-college/internal/database"
	"sainik-college/internal/model"
)

func CreateContact(ctx context.Context, db database.DB, m *model.Contact) (*model.Contact, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, subject, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.Name,
		m.Email,
		m.Phone,
		m.Subject,
		m.Message,
	)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, wrapErr("CreateContact", err)
	}
	return m, nil
}

func ListContacts(ctx context.Context, db database.DB) ([]model.Contact, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, email, phone, subject, message, created_at
		 FROM contacts ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, wrapErr("ListContacts", err)
	}
	defer rows.Close()

	list := []model.Contact{}
	for rows.Next() {
		var m model.Contact
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, wrapErr("ListContacts", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListContacts", err)
	}
	return list, nil
}

func DeleteContact(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteContact", err)
	}
	return expectOne("DeleteContact", tag)
}
