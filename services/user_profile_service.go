package services

import (
	"context"
	"fmt"
	"strings"

	"playdates_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserProfileService manages user profiles. The nameLowercase index field
// is recomputed on every write that touches the name.
type UserProfileService struct {
	Dynamo *DynamoService
}

// NewUserProfileService creates a UserProfileService.
func NewUserProfileService(dynamo *DynamoService) *UserProfileService {
	return &UserProfileService{Dynamo: dynamo}
}

// CreateProfile stores a new profile keyed by userId.
func (ups *UserProfileService) CreateProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("profile requires a userId: %w", models.ErrInvalidState)
	}
	profile.Normalize()

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", profile.UserID, err)
	}
	return &profile, nil
}

// GetProfile fetches a profile, tolerantly decoded.
func (ups *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, BuildStringKey("userId", userID))
	if err != nil {
		return nil, err
	}
	return models.DecodeUserProfile(item)
}

// UpdateProfile applies field updates under the store transaction. A name
// change recomputes nameLowercase in the same write so the search index
// never drifts from the display name.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	allowed := map[string]bool{"name": true, "bio": true, "avatarUrl": true, "emailId": true}

	result, err := ups.Dynamo.TransactUpdateItem(ctx, models.UserProfilesTable, BuildStringKey("userId", userID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var profile models.UserProfile
			if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
				return nil, fmt.Errorf("profile %s: %w: %v", userID, models.ErrDecodeFailure, err)
			}

			changed := false
			for field, value := range updates {
				if !allowed[field] {
					continue
				}
				switch field {
				case "name":
					if profile.Name != value {
						profile.Name = value
						changed = true
					}
				case "bio":
					if profile.Bio != value {
						profile.Bio = value
						changed = true
					}
				case "avatarUrl":
					if profile.AvatarURL != value {
						profile.AvatarURL = value
						changed = true
					}
				case "emailId":
					if profile.EmailID != value {
						profile.EmailID = value
						changed = true
					}
				}
			}
			if !changed {
				return nil, nil
			}
			profile.Normalize()
			return profile, nil
		})
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(result, &profile); err != nil {
		return nil, fmt.Errorf("profile %s: %w: %v", userID, models.ErrDecodeFailure, err)
	}
	return &profile, nil
}

// DeleteProfile removes a profile record.
func (ups *UserProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, BuildStringKey("userId", userID))
}

// SearchByNamePrefix finds profiles whose name starts with the given prefix,
// case-insensitively, via the nameLowercase index field.
func (ups *UserProfileService) SearchByNamePrefix(ctx context.Context, prefix string, limit int32) ([]models.UserProfile, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, nil
	}

	filter := "begins_with(nameLowercase, :prefix)"
	values := map[string]types.AttributeValue{
		":prefix": &types.AttributeValueMemberS{Value: prefix},
	}

	items, err := ups.Dynamo.ScanItems(ctx, models.UserProfilesTable, filter, values, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	profiles := make([]models.UserProfile, 0, len(items))
	for _, item := range items {
		profile, err := models.DecodeUserProfile(item)
		if err != nil {
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// UpdateLocation stores the user's last known coordinates.
func (ups *UserProfileService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	updateExpression := "SET latitude = :lat, longitude = :lng"
	values := map[string]types.AttributeValue{
		":lat": &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", lat)},
		":lng": &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", lng)},
	}

	_, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression,
		BuildStringKey("userId", userID), values, nil)
	if err != nil {
		return fmt.Errorf("failed to update location for %s: %w", userID, err)
	}
	return nil
}
