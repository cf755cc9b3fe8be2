package hobbies

import (
	"github.com/HobbyShelf/HS-Backend/internal/db"
	"gorm.io/gorm"
)

func Init(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "app"); err != nil {
		return err
	}
	return gdb.AutoMigrate(&Hobby{})
}
