package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/db"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// Seeds the development/test database with the canonical fixture set: two
// users (the first holding a live session token, the second none) and two
// todos with distinct owners, one already completed.
func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.AuthToken{}, &model.Todo{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Start from a clean slate so repeated runs stay deterministic.
	if err := gormDB.Exec("DELETE FROM todos").Error; err != nil {
		log.Fatalf("Failed to clear todos: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM auth_tokens").Error; err != nil {
		log.Fatalf("Failed to clear tokens: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)
	tokenService := auth.NewTokenService(cfg.JWTSecret)

	userOne, err := seedUser(ctx, userRepo, "userone@example.com", "onepass")
	if err != nil {
		log.Fatalf("Failed to seed first user: %v", err)
	}
	token, err := tokenService.Generate(userOne.ID)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	if err := userRepo.AppendToken(ctx, &model.AuthToken{
		UserID: userOne.ID,
		Access: model.TokenAccessAuth,
		Token:  token,
	}); err != nil {
		log.Fatalf("Failed to append token: %v", err)
	}

	userTwo, err := seedUser(ctx, userRepo, "usertwo@example.com", "twopass")
	if err != nil {
		log.Fatalf("Failed to seed second user: %v", err)
	}

	completedAt := time.Now().UnixMilli()
	todos := []model.Todo{
		{ID: uuid.New(), Text: "First test todo", CreatorID: userOne.ID},
		{ID: uuid.New(), Text: "Second test todo", Completed: true, CompletedAt: &completedAt, CreatorID: userTwo.ID},
	}
	for i := range todos {
		if err := todoRepo.Create(ctx, &todos[i]); err != nil {
			log.Fatalf("Failed to seed todo: %v", err)
		}
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Users created: 2")
	log.Printf("  - Todos created: %d", len(todos))
	log.Printf("  - Token for %s: %s", userOne.Email, token)
}

func seedUser(ctx context.Context, repo repository.UserRepository, email, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
