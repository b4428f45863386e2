package steps

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmail(email string) error {
	var existing model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&existing).Error; err == nil {
		t.currentUserID = existing.ID
		return nil
	}

	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:        userID,
		Email:     email,
		Name:      "Test User",
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.db.DbConn.Create(user).Error
}

func (t *testContext) iAmLoggedInAs(email string) error {
	if err := t.aUserExistsWithEmail(email); err != nil {
		return err
	}

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	t.currentUserID = user.ID

	return t.signAccessToken(user.ID, email)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("no user has been created")
	}
	return t.signAccessToken(t.currentUserID, "test@example.com")
}

func (t *testContext) signAccessToken(userID uuid.UUID, email string) error {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":     jwt.NewNumericDate(now),
		"nbf":     jwt.NewNumericDate(now),
		"sub":     userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}

	t.accessToken = tokenString
	return nil
}

func (t *testContext) anAccountExistsWithBalance(name, balance string) error {
	return t.createAccount(name, balance, false)
}

func (t *testContext) aDefaultAccountExistsWithBalance(name, balance string) error {
	return t.createAccount(name, balance, true)
}

func (t *testContext) createAccount(name, balance string, isDefault bool) error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("no user has been created")
	}

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance '%s': %w", balance, err)
	}

	accountID := uuid.New()
	t.accountIDs[name] = accountID

	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:        accountID,
		UserID:    t.currentUserID,
		Name:      name,
		Type:      "CURRENT",
		Balance:   amount,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.db.DbConn.Create(account).Error
}

func (t *testContext) theAccountShouldHaveBalance(name, expected string) error {
	accountID, ok := t.accountIDs[name]
	if !ok {
		return fmt.Errorf("account '%s' was never created", name)
	}

	expectedBalance, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid balance '%s': %w", expected, err)
	}

	var account model.AccountModel
	if err := t.db.DbConn.Where("id = ?", accountID).First(&account).Error; err != nil {
		return fmt.Errorf("account '%s' not found: %w", name, err)
	}

	if !account.Balance.Equal(expectedBalance) {
		return fmt.Errorf("account '%s' expected balance %s, got %s", name, expectedBalance, account.Balance)
	}
	return nil
}
