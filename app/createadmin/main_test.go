package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelryhub/domain"
	"jewelryhub/pkg/utils"
)

type fakeUserStore struct {
	byEmail   map[string]domain.User
	passwords map[uint]string
	nextID    uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail:   make(map[string]domain.User),
		passwords: make(map[uint]string),
	}
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return user, nil
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.nextID++
	user.ID = s.nextID
	s.byEmail[user.Email] = *user
	s.passwords[user.ID] = user.Password
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if _, ok := s.passwords[id]; !ok {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	s.passwords[id] = hash
	return nil
}

type fakeCategoryStore struct {
	categories []domain.Category
}

func (s *fakeCategoryStore) FindAll(ctx context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *fakeCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	category.ID = uint(len(s.categories) + 1)
	s.categories = append(s.categories, *category)
	return nil
}

func TestSeedAdminCreatesAccount(t *testing.T) {
	store := newFakeUserStore()

	require.NoError(t, seedAdmin(context.Background(), store))

	admin, ok := store.byEmail[adminEmail]
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, utils.CheckPassword(adminPassword, store.passwords[admin.ID]))
}

func TestSeedAdminResetsExistingPassword(t *testing.T) {
	store := newFakeUserStore()
	require.NoError(t, store.Create(context.Background(), &domain.User{
		Email:    adminEmail,
		Password: "old-hash",
		Role:     domain.RoleAdmin,
	}))

	require.NoError(t, seedAdmin(context.Background(), store))

	require.Len(t, store.byEmail, 1)
	admin := store.byEmail[adminEmail]
	assert.NotEqual(t, "old-hash", store.passwords[admin.ID])
	assert.True(t, utils.CheckPassword(adminPassword, store.passwords[admin.ID]))
}

func TestSeedCategoriesFillsEmptyTable(t *testing.T) {
	store := &fakeCategoryStore{}

	created, err := seedCategories(context.Background(), store)

	require.NoError(t, err)
	assert.Equal(t, len(defaultCategories), created)
	assert.Len(t, store.categories, len(defaultCategories))
	for _, category := range store.categories {
		assert.True(t, category.IsActive)
		assert.NotZero(t, category.ID)
	}
}

func TestSeedCategoriesSkipsExisting(t *testing.T) {
	store := &fakeCategoryStore{categories: []domain.Category{
		{ID: 1, Name: "Rings", IsActive: true},
		{ID: 2, Name: "Necklaces", IsActive: true},
	}}

	created, err := seedCategories(context.Background(), store)

	require.NoError(t, err)
	assert.Equal(t, len(defaultCategories)-2, created)
	assert.Len(t, store.categories, len(defaultCategories))
}
