package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"travel-booking/logger"
	"travel-booking/models/otp"
	"travel-booking/models/user"

	"gorm.io/gorm"
)

// Sender is the notifier contract: deliver a plain-text message to an
// address. The SMTP client satisfies it in production; tests substitute it.
type Sender interface {
	Send(to, subject, body string) error
}

// Service handles OTP issuance and verification.
type Service struct {
	DB     *gorm.DB
	Mailer Sender
}

// NewOTPService creates a new OTP service.
func NewOTPService(db *gorm.DB, mailer Sender) *Service {
	return &Service{DB: db, Mailer: mailer}
}

// GenerateCode generates a uniformly random 6-digit code.
func (s *Service) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue invalidates every unused OTP belonging to the user, creates a fresh
// code expiring in ten minutes and mails it out. Mail delivery is
// fire-and-forget: a dispatch failure is logged, never returned — the code is
// still valid once the row is persisted.
func (s *Service) Issue(u *user.User) (*otp.OTP, error) {
	err := s.DB.Model(&otp.OTP{}).
		Where("user_id = ? AND is_used = false", u.ID).
		Update("is_used", true).Error
	if err != nil {
		return nil, fmt.Errorf("failed to invalidate existing OTPs: %w", err)
	}

	code, err := s.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	newOTP := &otp.OTP{
		UserID:    u.ID,
		Code:      code,
		IsUsed:    false,
		ExpiresAt: time.Now().Add(otp.ExpiryMinutes * time.Minute),
	}

	if err := s.DB.Create(newOTP).Error; err != nil {
		return nil, fmt.Errorf("failed to create OTP record: %w", err)
	}

	subject := "Your OTP Code"
	body := fmt.Sprintf("Your OTP code is: %s\n\nThis code will expire in %d minutes.", code, otp.ExpiryMinutes)
	if err := s.Mailer.Send(u.Email, subject, body); err != nil {
		logger.Warning(fmt.Sprintf("Failed to send OTP email to %s: %v", u.Email, err))
	}

	return newOTP, nil
}

// Verify checks a submitted code for the user. A missing, already-used or
// expired code is a normal negative outcome (false, nil); errors are reserved
// for the store itself. On success the matching row is marked used.
func (s *Service) Verify(userID uint, code string) (bool, error) {
	var otpRecord otp.OTP

	err := s.DB.Where("user_id = ? AND code = ? AND is_used = false", userID, code).
		Order("created_at DESC").
		First(&otpRecord).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to find OTP record: %w", err)
	}

	if otpRecord.IsExpired() {
		return false, nil
	}

	otpRecord.IsUsed = true
	if err := s.DB.Save(&otpRecord).Error; err != nil {
		return false, fmt.Errorf("failed to mark OTP as used: %w", err)
	}

	return true, nil
}

// CleanupExpired removes expired OTP records from the database.
func (s *Service) CleanupExpired() error {
	return s.DB.Where("expires_at < ?", time.Now()).Delete(&otp.OTP{}).Error
}

// RunCleanup sweeps expired rows on the given interval, starting with an
// immediate pass. Run it in its own goroutine.
func (s *Service) RunCleanup(interval time.Duration) {
	for {
		if err := s.CleanupExpired(); err != nil {
			logger.Error("Failed to clean up expired OTPs", err)
		}
		time.Sleep(interval)
	}
}
