package db

import (
	"context"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// AccountRepository provides account-related database operations
type AccountRepository struct {
	*Repository
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(repo *Repository) *AccountRepository {
	return &AccountRepository{Repository: repo}
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByIDs retrieves multiple accounts by IDs
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Account, error) {
	if len(ids) == 0 {
		return []*models.Account{}, nil
	}
	var accounts []*models.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicate(err) {
			return apperror.AlreadyExists("username or email already exists")
		}
		return err
	}
	return nil
}

// Update updates an account
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Search finds accounts matching query in username, full name or bio,
// excluding excludeID, ordered by last-active descending
func (r *AccountRepository) Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]*models.Account, int64, error) {
	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("(username ILIKE ? OR full_name ILIKE ? OR bio ILIKE ?)", pattern, pattern, pattern).
		Where("id <> ?", excludeID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []*models.Account
	if err := base.Order("last_active DESC").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
