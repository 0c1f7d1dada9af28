package models

// User represents the user model in the database
type User struct {
	Base
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`
	Password       string          `gorm:"not null" json:"-"`
	Expenses       []Expense       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
	Budgets        []Budget        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"budgets,omitempty"`
	RecurringBills []RecurringBill `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"recurring_bills,omitempty"`
	Notifications  []Notification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"notifications,omitempty"`
	Groups         []Group         `gorm:"many2many:group_members" json:"groups,omitempty"`
}
