package main

import (
	"fmt"
	"os"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
	"github.com/akhyar02/scholar-draft-sub000/app/routes/auth"
)

// Usage: add_admin <email> <password> [first_name] [last_name]
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: add_admin <email> <password> [first_name] [last_name]")
		return
	}

	config.Load()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	firstName := "Portal"
	lastName := "Admin"
	if len(os.Args) > 3 {
		firstName = os.Args[3]
	}
	if len(os.Args) > 4 {
		lastName = os.Args[4]
	}

	hashed, err := auth.HashPassword(os.Args[2])
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	user := &models.User{
		Email:     os.Args[1],
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := database.CreateUserWithRole(db, user, "admin"); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		return
	}

	fmt.Printf("Admin created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
