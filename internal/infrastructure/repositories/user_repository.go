package repositories

import (
	"context"
	"time"

	"github.com/uwcirg/waverify-auth/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Email         string    `gorm:"uniqueIndex;size:255"`
	FirstName     string    `gorm:"size:255"`
	LastName      string    `gorm:"size:255"`
	Enabled       bool      `gorm:"index"`
	EmailVerified bool      `gorm:"index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBUserAttribute is a named string value attached to a user. Attributes are
// upserted by (user_id, name), so each name holds at most one value per user.
type DBUserAttribute struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_user_attr,priority:1;index;size:36"`
	Name      string `gorm:"uniqueIndex:idx_user_attr,priority:2;size:255"`
	Value     string `gorm:"index;size:1024"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBUserAttribute) TableName() string {
	return "user_attributes"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// SetAttribute implements domain.UserRepository. Writing the same name twice
// replaces the value rather than accumulating rows.
func (r *UserRepositoryImpl) SetAttribute(ctx context.Context, userID, name, value string) error {
	attr := DBUserAttribute{UserID: userID, Name: name, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&attr).Error
}

// GetAttribute implements domain.UserRepository. An absent attribute is not an
// error; callers receive the empty string.
func (r *UserRepositoryImpl) GetAttribute(ctx context.Context, userID, name string) (string, error) {
	var attr DBUserAttribute
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&attr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return attr.Value, nil
}

// FindByAttribute implements domain.UserRepository
func (r *UserRepositoryImpl) FindByAttribute(ctx context.Context, name, value string) (*domain.User, error) {
	var attr DBUserAttribute
	err := r.db.WithContext(ctx).Where("name = ? AND value = ?", name, value).First(&attr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return r.FindByID(ctx, attr.UserID)
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Enabled:       user.Enabled,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		FirstName:     dbUser.FirstName,
		LastName:      dbUser.LastName,
		Enabled:       dbUser.Enabled,
		EmailVerified: dbUser.EmailVerified,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
