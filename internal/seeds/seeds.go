package seeds

import (
	_ "embed"
	"time"

	"github.com/HobbyShelf/HS-Backend/internal/hobbies"
	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/goccy/go-yaml"
	"gorm.io/gorm"
)

//go:embed users.yaml
var usersYAML []byte

type seedHobby struct {
	HobbyDescription string `yaml:"hobby_description"`
	DateLearned      string `yaml:"date_learned"`
}

type seedUser struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	Hobbies  []seedHobby `yaml:"hobbies"`
}

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

// SeedAll upserts the fixture users and their hobbies. Safe to run twice.
func SeedAll(gdb *gorm.DB) error {
	var f seedFile
	if err := yaml.Unmarshal(usersYAML, &f); err != nil {
		return err
	}

	for _, su := range f.Users {
		user := users.User{Username: su.Username, Password: su.Password}
		if err := gdb.Where("username = ?", su.Username).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		for _, sh := range su.Hobbies {
			date, err := time.Parse("2006-01-02", sh.DateLearned)
			if err != nil {
				return err
			}
			hobby := hobbies.Hobby{
				UserID:           user.ID,
				HobbyDescription: sh.HobbyDescription,
				DateLearned:      date,
			}
			err = gdb.Where("user_id = ? AND hobby_description = ?", user.ID, sh.HobbyDescription).
				FirstOrCreate(&hobby).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}
