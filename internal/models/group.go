package models

import "time"

// Group represents a set of users who share expenses. Membership is stored
// in the group_members join table; the creator is always the first member.
type Group struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `gorm:"not null" json:"created_date"`
	Members     []User    `gorm:"many2many:group_members" json:"members,omitempty"`
}
