// Package testing provides test utilities and database setup for testing the short link service
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCustomer creates a customer with a unique email and a known password
func (tf *TestFixtures) CreateTestCustomer() (*models.Customer, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	customer := &models.Customer{
		UUID:         uuid.New(),
		Username:     fmt.Sprintf("tester%s", randomDigits),
		Email:        fmt.Sprintf("john.doe.%s@example.com", randomDigits),
		PasswordHash: string(hashedPassword),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test customer: %w", err)
	}

	return customer, nil
}

// CreateTestShortLink creates a short link owned by the given customer
func (tf *TestFixtures) CreateTestShortLink(customerID uint, uid, longLink string, expiresAt *time.Time) (*models.ShortLink, error) {
	link := &models.ShortLink{
		UID:        uid,
		LongLink:   longLink,
		CustomerID: &customerID,
		ExpiresAt:  expiresAt,
	}

	if err := tf.DB.DB.Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to create test short link: %w", err)
	}

	return link, nil
}

// CreateTestClick records a click event for the given identifier
func (tf *TestFixtures) CreateTestClick(uid, browser, os, deviceType string) (*models.ShortLinkClick, error) {
	ip := "203.0.113.10"
	click := &models.ShortLinkClick{
		UID:        uid,
		Browser:    browser,
		OS:         os,
		DeviceType: deviceType,
		IP:         &ip,
	}

	if err := tf.DB.DB.Create(click).Error; err != nil {
		return nil, fmt.Errorf("failed to create test click: %w", err)
	}

	return click, nil
}
