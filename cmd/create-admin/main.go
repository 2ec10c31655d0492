package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/database"
	"github.com/educonnect/educonnect-backend/internal/logger"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo)
	userService := service.NewUserService(userRepo, repository.NewParentLinkRepository(pool), repository.NewClassRepository(pool), authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	firstName := prompt(reader, "Enter First Name: ")
	if firstName == "" {
		fmt.Println("Error: First name is required")
		return
	}

	lastName := prompt(reader, "Enter Last Name: ")
	if lastName == "" {
		fmt.Println("Error: Last name is required")
		return
	}

	email := prompt(reader, "Enter Email: ")
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	admin, err := userService.Create(ctx, model.CreateUserRequest{
		Email:     email,
		Password:  password,
		Role:      model.RoleAdmin,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fmt.Printf("Error: a user with email %s already exists\n", service.NormalizeEmail(email))
			return
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", admin.FullName(), admin.Email, admin.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := reader.ReadString('\n')
	return strings.TrimSpace(s)
}
