package users

// User is an account that can hold hobbies. Password is stored and compared
// verbatim; see DESIGN.md for why this known defect is preserved.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Password     string  `json:"-"`
	ProfileImage *string `json:"profile_image"`
}

func (User) TableName() string { return "app.users" }
