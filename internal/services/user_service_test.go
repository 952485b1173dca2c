package services

import (
	"testing"

	"coinvault/internal/models"
	"coinvault/internal/testutil"
)

func TestUserService_CreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	t.Run("creates user with portfolio", func(t *testing.T) {
		user, err := svc.CreateUser("alice@example.com", "password123", "Alice Doe")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Error("expected user ID to be assigned")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password stored in plaintext")
		}

		var portfolio models.Portfolio
		if err := db.Where("user_id = ?", user.ID).First(&portfolio).Error; err != nil {
			t.Fatalf("expected portfolio row for new user: %v", err)
		}
		if portfolio.TotalValueUSD != 0 || len(portfolio.Assets) != 0 {
			t.Errorf("expected empty snapshot, got total=%v assets=%d", portfolio.TotalValueUSD, len(portfolio.Assets))
		}
	})

	t.Run("lowercases email", func(t *testing.T) {
		user, err := svc.CreateUser("Bob@Example.COM", "password123", "Bob")
		testutil.AssertNoError(t, err)
		if user.Email != "bob@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser("dup@example.com", "password123", "First")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "password123", "Second")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.CreateUser("", "password123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("x@example.com", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUserService_GetUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	t.Run("finds active user", func(t *testing.T) {
		created := testutil.CreateTestUserWithEmail(t, db, "find@example.com")

		user, err := svc.GetUserByEmail("find@example.com")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("ignores inactive user", func(t *testing.T) {
		user := testutil.CreateTestUserWithEmail(t, db, "gone@example.com")
		db.Model(user).Update("is_active", false)

		_, err := svc.GetUserByEmail("gone@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	t.Run("found", func(t *testing.T) {
		created := testutil.CreateTestUser(t, db)
		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetUserByID("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUserService_VerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user, err := svc.CreateUser("verify@example.com", "correct-horse", "V")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "battery-staple") {
		t.Error("expected wrong password to fail")
	}
}
