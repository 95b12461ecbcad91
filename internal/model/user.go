package model

// User is owned by the user-management side; this service only reads it.
type User struct {
	ID    int
	Email string
	Name  string
}
