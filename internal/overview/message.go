package overview

import "time"

const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldBody      = "message"
	FieldRead      = "read"
	FieldCreatedAt = "createdAt"
)

// Message is a contact-form submission. The dashboard only reads them.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func MessageFromDocument(id string, fields map[string]any) Message {
	m := Message{ID: id}
	m.Name, _ = fields[FieldName].(string)
	m.Email, _ = fields[FieldEmail].(string)
	m.Subject, _ = fields[FieldSubject].(string)
	m.Body, _ = fields[FieldBody].(string)
	m.Read, _ = fields[FieldRead].(bool)
	m.CreatedAt, _ = fields[FieldCreatedAt].(time.Time)
	if m.Subject == "" {
		m.Subject = "(no subject)"
	}
	return m
}
