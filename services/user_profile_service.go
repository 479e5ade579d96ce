package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (ups *UserProfileService) now() time.Time {
	if ups.Clock != nil {
		return ups.Clock()
	}
	return time.Now()
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// EnsureProfile creates the profile on first sign-in and merge-updates the
// provider-supplied fields plus lastLogin on every later one.
func (ups *UserProfileService) EnsureProfile(ctx context.Context, user models.AuthUser) (*models.UserProfile, error) {
	now := ups.now().UTC().Format(time.RFC3339)

	existing, err := ups.GetUserProfile(ctx, user.UID)
	if errors.Is(err, models.ErrNotFound) {
		profile := models.UserProfile{
			UserID:     user.UID,
			GoogleName: user.Name,
			Email:      user.Email,
			Photo:      user.Photo,
			CreatedAt:  now,
			LastLogin:  now,
		}
		if err := ups.Dynamo.PutItem(ctx, models.UsersTable, profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: user.UID},
	}
	updated, err := ups.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET #googleName = :googleName, #email = :email, #photo = :photo, #lastLogin = :lastLogin",
		key,
		map[string]types.AttributeValue{
			":googleName": &types.AttributeValueMemberS{Value: user.Name},
			":email":      &types.AttributeValueMemberS{Value: user.Email},
			":photo":      &types.AttributeValueMemberS{Value: user.Photo},
			":lastLogin":  &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{
			"#googleName": "googleName",
			"#email":      "email",
			"#photo":      "photo",
			"#lastLogin":  "lastLogin",
		},
	)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		// Stale but usable; the merge itself succeeded.
		return existing, nil
	}
	return &profile, nil
}

// SetUsername records the chosen username during the one-time setup step.
// Later changes go through UpdateSettings.
func (ups *UserProfileService) SetUsername(ctx context.Context, userID, username string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if err := models.ValidateUsername(username); err != nil {
		return nil, err
	}

	profile, err := ups.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Username != "" {
		return nil, models.NewValidationError("username", "already set; change it in settings")
	}

	return ups.setUsername(ctx, userID, username)
}

// UpdateSettings applies the settings form: optional username change, the
// three email preference switches and the wes mode flag.
func (ups *UserProfileService) UpdateSettings(ctx context.Context, userID, username string, prefs models.EmailPreferences, wesMode bool) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username != "" {
		if err := models.ValidateUsername(username); err != nil {
			return nil, err
		}
		if _, err := ups.setUsername(ctx, userID, username); err != nil {
			return nil, err
		}
	} else if _, err := ups.GetUserProfile(ctx, userID); err != nil {
		return nil, err
	}

	prefsAV, err := attributevalue.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email preferences: %w", err)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updated, err := ups.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET #emailPreferences = :emailPreferences, #wesMode = :wesMode",
		key,
		map[string]types.AttributeValue{
			":emailPreferences": prefsAV,
			":wesMode":          &types.AttributeValueMemberBOOL{Value: wesMode},
		},
		map[string]string{
			"#emailPreferences": "emailPreferences",
			"#wesMode":          "wesMode",
		},
	)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (ups *UserProfileService) setUsername(ctx context.Context, userID, username string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updated, err := ups.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET #username = :username",
		key,
		map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
		map[string]string{"#username": "username"},
	)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// ListUsers returns the full user directory. Roster derivation and the daily
// digest both need everyone, including users who never responded.
func (ups *UserProfileService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := ups.Dynamo.ScanItems(ctx, models.UsersTable, &users); err != nil {
		return nil, err
	}
	return users, nil
}
