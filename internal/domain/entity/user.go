package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid roles for User.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

// Roles lists every valid role value.
var Roles = []string{RoleUser, RoleAdmin, RoleSupervisor}

// IsValidRole reports whether s is a member of the role enumeration.
func IsValidRole(s string) bool {
	for _, r := range Roles {
		if r == s {
			return true
		}
	}
	return false
}

// UserName name parts; MiddleName is optional.
type UserName struct {
	FirstName  string `bson:"firstName" json:"firstName"`
	MiddleName string `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName   string `bson:"lastName" json:"lastName"`
}

// Full renders the display name, skipping an empty middle name.
func (n UserName) Full() string {
	if n.MiddleName != "" {
		return n.FirstName + " " + n.MiddleName + " " + n.LastName
	}
	return n.FirstName + " " + n.LastName
}

// User account record. Password carries the bcrypt hash, never plaintext,
// and is projected out of profile reads by the repository.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              UserName           `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	Role              string             `bson:"role" json:"role"`
	IsBlocked         bool               `bson:"isBlocked" json:"isBlocked"`
	IsDeleted         bool               `bson:"isDeleted" json:"isDeleted"`
	PasswordChangedAt *time.Time         `bson:"passwordChangedAt,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate partial update for a user profile; nil fields are left
// untouched.
type ProfileUpdate struct {
	Name  *UserName
	Email *string
	Image *string
	Role  *string
}

// PasswordChangedAfter reports whether the password was changed after a token
// with the given iat (unix seconds) was issued. Such tokens are invalid:
// changing the password logs the user out everywhere.
func (u *User) PasswordChangedAfter(issuedAt int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt
}
