package model

import "time"

// Member represents a person enrolled in the facility.  A member is
// distinct from a login user: members are managed by staff and do not
// necessarily have credentials of their own.  This struct corresponds
// to a row in the `members` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name of the member.
//  Email     – contact email, unique across members.
//  Phone     – contact phone number.
//  Address   – postal address (optional).
//  IsActive  – whether the member is currently active.
//  JoinedAt  – date the member first enrolled.
//  CreatedAt – timestamp when the record was created.
//  UpdatedAt – timestamp of last update.
type Member struct {
	ID        uint64    `json:"id"`         // members.id
	Name      string    `json:"name"`       // members.name
	Email     string    `json:"email"`      // members.email
	Phone     string    `json:"phone"`      // members.phone
	Address   *string   `json:"address"`    // members.address (nullable)
	IsActive  bool      `json:"is_active"`  // members.is_active
	JoinedAt  time.Time `json:"joined_at"`  // members.joined_at
	CreatedAt time.Time `json:"created_at"` // members.created_at
	UpdatedAt time.Time `json:"updated_at"` // members.updated_at
}
