package domain

import "time"

// User is an account identified by a unique name and guarded by a pin code.
type User struct {
	ID         string
	Name       string
	PinCode    string
	Created    time.Time
	LastUpdate *time.Time
}

// Matches reports whether the credentials equal the stored ones.
// Name comparison is case-sensitive.
func (u User) Matches(name, pinCode string) bool {
	return u.Name == name && u.PinCode == pinCode
}
