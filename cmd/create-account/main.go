// cmd/create-account - Provision teacher and admin accounts
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"rcsinavim/config"
	"rcsinavim/database"
	"rcsinavim/models"
	"rcsinavim/services"
)

func main() {
	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password (at least 6 characters)")
	role := flag.String("role", string(models.RoleTeacher), "student, teacher or admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	users := services.NewUserService(database.NewStore(db), services.NewValidator())
	user, err := users.CreateAccount(context.Background(), services.RegisterInput{
		Email:    *email,
		Name:     *name,
		Password: *password,
	}, models.Role(*role))
	if err != nil {
		log.Fatalf("✗ %s", services.Message(err))
	}

	fmt.Printf("✓ Created %s account %s (%s)\n", user.Role, user.Email, user.ID)
}
