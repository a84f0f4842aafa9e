package auth

import (
	"context"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationService records session tokens invalidated before their expiry
type RevocationService struct {
	db *gorm.DB
}

func NewRevocationService(db *gorm.DB) *RevocationService {
	return &RevocationService{db: db}
}

// Revoke marks a jti as unusable until expiresAt. Revoking twice is a no-op.
func (s *RevocationService) Revoke(ctx context.Context, jti, adminID string, expiresAt time.Time, reason string) error {
	entry := model.RevokedSession{
		JTI:       jti,
		AdminID:   adminID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).
		Error
}

// IsRevoked checks if a jti has been revoked and is still within its lifetime
func (s *RevocationService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RevokedSession{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).
		Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CleanupExpired removes entries whose tokens would have expired anyway
func (s *RevocationService) CleanupExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.RevokedSession{})
	return result.RowsAffected, result.Error
}
