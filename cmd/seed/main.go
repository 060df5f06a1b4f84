package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskflow/internal/config"
	"taskflow/internal/db"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Name  string
	Email string
	Role  model.Role
	Tasks []seedTask
}

type seedTask struct {
	Title       string
	Description string
	Status      model.TaskStatus
}

var seedUsers = []seedUser{
	{
		Name:  "Admin",
		Email: "admin@taskflow.local",
		Role:  model.RoleAdmin,
	},
	{
		Name:  "Alice Example",
		Email: "alice@taskflow.local",
		Role:  model.RoleUser,
		Tasks: []seedTask{
			{Title: "Write onboarding doc", Description: "First draft for the team wiki", Status: model.StatusPending},
			{Title: "Review Q3 report", Status: model.StatusCompleted},
		},
	},
	{
		Name:  "Bob Example",
		Email: "bob@taskflow.local",
		Role:  model.RoleUser,
		Tasks: []seedTask{
			{Title: "Fix login redirect", Description: "Redirect loop after session expiry", Status: model.StatusPending},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	usersCreated, tasksCreated, skipped := 0, 0, 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed checking user %s: %v", su.Email, err)
		}
		if existing != nil {
			log.Printf("Skipping existing user %s", su.Email)
			skipped++
			continue
		}

		user := &model.User{
			ID:           uuid.New(),
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed creating user %s: %v", su.Email, err)
		}
		usersCreated++

		for _, st := range su.Tasks {
			task := &model.Task{
				Title:          st.Title,
				Description:    st.Description,
				Status:         st.Status,
				AssignedUserID: user.ID,
			}
			if err := taskRepo.Create(ctx, task); err != nil {
				log.Fatalf("Failed creating task %q for %s: %v", st.Title, su.Email, err)
			}
			tasksCreated++
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d (skipped %d existing)", usersCreated, skipped)
	log.Printf("  - Tasks created: %d", tasksCreated)
	log.Printf("  - Seed password for all users: %s", seedPassword)
}
