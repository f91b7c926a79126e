package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

const demoPassword = "password123"

type seedUser struct {
	Name           string
	Email          string
	Role           model.Role
	Department     string
	GraduationYear int
	Skills         []string
}

var seedUsers = []seedUser{
	{Name: "Admin", Email: "admin@projecthub.local", Role: model.RoleAdmin, Department: "Platform"},
	{Name: "Alice Chen", Email: "alice@projecthub.local", Role: model.RoleMember, Department: "Computer Science", GraduationYear: 2025, Skills: []string{"Go", "MySQL"}},
	{Name: "Bob Martin", Email: "bob@projecthub.local", Role: model.RoleMember, Department: "Electrical Engineering", GraduationYear: 2026, Skills: []string{"Python", "Embedded"}},
	{Name: "Carol Diaz", Email: "carol@projecthub.local", Role: model.RoleMember, Department: "Design", GraduationYear: 2025, Skills: []string{"Figma", "React"}},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Comment{},
		&model.Rating{},
		&model.Message{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	created, updated := 0, 0
	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.Email, err)
		}

		if existing != nil {
			existing.Name = su.Name
			existing.Role = su.Role
			existing.Department = su.Department
			existing.GraduationYear = su.GraduationYear
			existing.Skills = su.Skills
			if err := userRepo.Update(ctx, existing); err != nil {
				log.Fatalf("Failed to update user %s: %v", su.Email, err)
			}
			users[su.Email] = existing
			updated++
			continue
		}

		user := &model.User{
			Name:           su.Name,
			Email:          su.Email,
			PasswordHash:   string(hash),
			Role:           su.Role,
			Department:     su.Department,
			GraduationYear: su.GraduationYear,
			Skills:         su.Skills,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		users[su.Email] = user
		created++
	}

	// One demo project per member, skipped if the user already has any
	projects := 0
	existing, err := projectRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list projects: %v", err)
	}
	hasProject := make(map[string]bool)
	for _, p := range existing {
		hasProject[p.CreatorID.String()] = true
	}

	demoProjects := map[string]model.Project{
		"alice@projecthub.local": {
			Title:        "Campus Ride Share",
			Description:  "Matches students commuting from the same neighborhoods.",
			Technologies: []string{"Go", "MySQL", "Redis"},
			Resources:    []model.Resource{{Title: "Repo", URL: "https://example.com/rideshare"}},
		},
		"bob@projecthub.local": {
			Title:        "Sensor Mesh Dashboard",
			Description:  "Live dashboard for a LoRa sensor mesh across campus.",
			Technologies: []string{"Python", "MQTT"},
		},
	}
	for email, proj := range demoProjects {
		owner, ok := users[email]
		if !ok || hasProject[owner.ID.String()] {
			continue
		}
		proj.CreatorID = owner.ID
		if err := projectRepo.Create(ctx, &proj); err != nil {
			log.Fatalf("Failed to create project %q: %v", proj.Title, err)
		}
		projects++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
	log.Printf("  - Demo projects created: %d", projects)
	log.Printf("  - Demo password for all users: %s", demoPassword)
}
