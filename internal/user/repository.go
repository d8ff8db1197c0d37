package user

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	FindByUsername(username string) (*User, error)
	FindByID(id uuid.UUID) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

// FindByUsername matches case-insensitively, so "Alice" and "alice"
// are the same account.
func (r *repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
