package domain

import "time"

type User struct {
	ID                int
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (u *User) OwnsTodo(t *Todo) bool {
	return t.OwnerID == u.ID
}
