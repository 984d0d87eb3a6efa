package domain

import "time"

// User is a registered account. Events reference users as owner and as
// roster members.
type User struct {
	ID        string
	Name      string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}
