package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user can hold.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// User is an account. Email is expected to be unique but nothing enforces it.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"_id"`
	Email        string             `bson:"email,omitempty"        json:"email,omitempty"`
	Role         string             `bson:"role,omitempty"         json:"role,omitempty"`
	VerifiedUser bool               `bson:"verifiedUser,omitempty" json:"verifiedUser,omitempty"`
	Attributes   Attributes         `bson:",inline"                json:"-"`
}

// HasRole reports whether u is non-nil and holds role.
func (u *User) HasRole(role string) bool {
	return u != nil && u.Role == role
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalDocument(plain(u), u.Attributes)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var v plain
	attrs, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	*u = User(v)
	return nil
}
