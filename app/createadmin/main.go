package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jewelryhub/domain"
	psqlRepo "jewelryhub/internal/repository/postgres"
	"jewelryhub/pkg/config"
	"jewelryhub/pkg/database"
	"jewelryhub/pkg/logger"
	"jewelryhub/pkg/utils"
)

// UserStore contract interface
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// CategoryStore contract interface
type CategoryStore interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
}

const (
	adminEmail    = "admin@jewelry.com"
	adminPassword = "admin123"
)

// defaultCategories is the baseline catalog taxonomy a fresh deployment
// starts from; sellers cannot create products until categories exist.
var defaultCategories = []domain.Category{
	{Name: "Rings", Description: "Engagement, wedding and fashion rings", IsActive: true},
	{Name: "Necklaces", Description: "Chains, pendants and chokers", IsActive: true},
	{Name: "Earrings", Description: "Studs, hoops and drop earrings", IsActive: true},
	{Name: "Bracelets", Description: "Bangles, cuffs and charm bracelets", IsActive: true},
	{Name: "Watches", Description: "Luxury and fashion timepieces", IsActive: true},
}

// Seeds the bootstrap admin account and the default categories. Re-running
// the tool resets the admin credentials and fills in any missing category.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := seedAdmin(ctx, psqlRepo.NewUserRepository(db)); err != nil {
		logger.Fatal("Failed to seed admin user", "error", err)
	}

	created, err := seedCategories(ctx, psqlRepo.NewCategoryRepository(db))
	if err != nil {
		logger.Fatal("Failed to seed categories", "error", err)
	}

	logger.Info("Seeding complete", "admin_email", adminEmail, "categories_created", created)
}

// seedAdmin creates the admin account, or resets its password when the
// account already exists.
func seedAdmin(ctx context.Context, users UserStore) error {
	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		return users.UpdatePassword(ctx, existing.ID, hashed)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	return users.Create(ctx, &domain.User{
		FullName: "Admin",
		Email:    adminEmail,
		Password: hashed,
		Role:     domain.RoleAdmin,
		IsActive: true,
	})
}

// seedCategories creates every default category not already present,
// matching by name, and reports how many were created.
func seedCategories(ctx context.Context, categories CategoryStore) (int, error) {
	existing, err := categories.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	byName := make(map[string]struct{}, len(existing))
	for _, category := range existing {
		byName[category.Name] = struct{}{}
	}

	created := 0
	for _, category := range defaultCategories {
		if _, ok := byName[category.Name]; ok {
			continue
		}
		category := category
		if err := categories.Create(ctx, &category); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
