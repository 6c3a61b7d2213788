package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// Creates a back-office admin, or resets the password of an existing one
// Usage: go run ./scripts/create_admin -email admin@druktrails.bt -username admin -password <password>
func main() {
	email := flag.String("email", "", "admin email")
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password, at least 8 characters")
	flag.Parse()

	if *email == "" || *username == "" || len(*password) < 8 {
		fmt.Println("Usage: go run ./scripts/create_admin -email <email> -username <username> -password <password>")
		os.Exit(1)
	}

	conf := config.New()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := databases.NewClient(conf)
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		os.Exit(1)
	}
	if err := client.Connect(ctx); err != nil {
		fmt.Printf("Error connecting: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())
	users := databases.NewUserDatabase(databases.NewDatabase(conf, client))

	// Generate bcrypt hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	existing, err := users.FindByEmail(ctx, *email)
	if err != nil {
		fmt.Printf("Error looking up user: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		_, err := users.Update(ctx, existing.HexID(), map[string]interface{}{
			"passwordHash": string(hashedPassword),
			"role":         string(models.RoleAdmin),
		})
		if err != nil {
			fmt.Printf("Error updating user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reset password and admin role for %s (%s)\n", existing.Email, existing.HexID())
		return
	}

	user := models.User{Email: *email, Username: *username, PasswordHash: string(hashedPassword), Role: models.RoleAdmin}
	id, err := users.Create(ctx, &user)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created admin %s (%s)\n", user.Email, id)
}
