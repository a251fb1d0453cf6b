package repositories

import (
	"context"
	"time"

	"github.com/uwcirg/waverify-auth/domain"
	"gorm.io/gorm"
)

// CredentialRepositoryImpl implements domain.CredentialRepository using GORM
type CredentialRepositoryImpl struct {
	db *gorm.DB
}

// DBCredential represents the database model for Credential (with GORM tags)
type DBCredential struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"index:idx_cred_user_type,priority:1;size:36"`
	Type       string    `gorm:"index:idx_cred_user_type,priority:2;size:64"`
	SecretData string    `gorm:"size:4096"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBCredential) TableName() string {
	return "credentials"
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) domain.CredentialRepository {
	return &CredentialRepositoryImpl{db: db}
}

// Create implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) Create(ctx context.Context, cred *domain.Credential) error {
	dbCred := r.domainToDB(cred)
	if err := r.db.WithContext(ctx).Create(dbCred).Error; err != nil {
		return err
	}
	cred.CreatedAt = dbCred.CreatedAt
	return nil
}

// Update implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) Update(ctx context.Context, cred *domain.Credential) error {
	result := r.db.WithContext(ctx).Model(&DBCredential{}).
		Where("id = ?", cred.ID).
		Update("secret_data", cred.SecretData)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCredentialNotFound
	}
	return nil
}

// FindByType implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) FindByType(ctx context.Context, userID, credType string) ([]*domain.Credential, error) {
	var dbCreds []DBCredential
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, credType).
		Order("created_at asc").
		Find(&dbCreds).Error
	if err != nil {
		return nil, err
	}

	creds := make([]*domain.Credential, 0, len(dbCreds))
	for i := range dbCreds {
		creds = append(creds, r.dbToDomain(&dbCreds[i]))
	}
	return creds, nil
}

// Delete implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) Delete(ctx context.Context, credentialID string) error {
	return r.db.WithContext(ctx).Where("id = ?", credentialID).Delete(&DBCredential{}).Error
}

// domainToDB converts domain credential to database credential
func (r *CredentialRepositoryImpl) domainToDB(cred *domain.Credential) *DBCredential {
	return &DBCredential{
		ID:         cred.ID,
		UserID:     cred.UserID,
		Type:       cred.Type,
		SecretData: cred.SecretData,
		CreatedAt:  cred.CreatedAt,
	}
}

// dbToDomain converts database credential to domain credential
func (r *CredentialRepositoryImpl) dbToDomain(dbCred *DBCredential) *domain.Credential {
	return &domain.Credential{
		ID:         dbCred.ID,
		UserID:     dbCred.UserID,
		Type:       dbCred.Type,
		SecretData: dbCred.SecretData,
		CreatedAt:  dbCred.CreatedAt,
	}
}
