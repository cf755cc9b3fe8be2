package hobbies

import "time"

// Hobby belongs to a user by plain user_id; there is no database-level
// foreign key, so deleting a user can leave orphaned rows.
type Hobby struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null" json:"user_id"`
	HobbyDescription string    `gorm:"size:50;not null" json:"hobby_description"`
	DateLearned      time.Time `gorm:"type:date;not null" json:"date_learned"`
}

func (Hobby) TableName() string { return "app.hobbies" }
