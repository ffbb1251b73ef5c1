package data

import (
	"context"
	"errors"
	"time"

	"mentorship/lib/apperrors"
	"mentorship/lib/constants"
	"mentorship/lib/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

// ProfileRepository defines the interface for user profile operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID, profileType string) (*models.UserProfile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID, profileType string, patch models.ProfilePatch) error
	SoftDeleteProfile(ctx context.Context, userID, profileType string) error
}

// ProfileDao implements ProfileRepository against the UserProfiles table.
type ProfileDao struct {
	DB     DynamoDBAPI
	Table  string
	Logger *logrus.Logger
}

// CreateProfile writes a new profile row. The email must not already belong
// to a live profile; a duplicate is a conflict and nothing is written.
func (dao *ProfileDao) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	existing, err := dao.GetProfileByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrGone) {
		return err
	}
	if existing != nil || errors.Is(err, apperrors.ErrGone) {
		return apperrors.Wrap(apperrors.ErrConflict, "a profile with this email already exists")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.DeletedAt = ""

	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return err
	}

	_, err = dao.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(dao.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(UserId)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.Wrap(apperrors.ErrConflict, "a profile with this email already exists")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":        profile.Email,
			"profile_type": profile.ProfileType,
			"operation":    "CreateProfile",
		}).Error("Failed to create user profile")
		return err
	}

	dao.Logger.WithFields(logrus.Fields{
		"user_id":      profile.UserID,
		"profile_type": profile.ProfileType,
		"operation":    "CreateProfile",
	}).Info("User profile created")
	return nil
}

// GetProfile reads a profile by its full key.
func (dao *ProfileDao) GetProfile(ctx context.Context, userID, profileType string) (*models.UserProfile, error) {
	output, err := dao.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(dao.Table),
		Key: map[string]ddbtypes.AttributeValue{
			"UserId":      &ddbtypes.AttributeValueMemberS{Value: userID},
			"ProfileType": &ddbtypes.AttributeValueMemberS{Value: profileType},
		},
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":      userID,
			"profile_type": profileType,
			"operation":    "GetProfile",
		}).Error("Failed to get user profile")
		return nil, err
	}
	if output.Item == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "user profile not found")
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(output.Item, &profile); err != nil {
		return nil, err
	}
	if profile.IsDeleted() {
		return nil, apperrors.Wrap(apperrors.ErrGone, "user profile has been deleted")
	}
	return &profile, nil
}

// GetProfileByEmail looks a profile up through the email index. Absence and
// soft deletion are distinct outcomes: a missing row is not found, a row
// with DeletedAt set is gone.
func (dao *ProfileDao) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	keyCondition := expression.Key("Email").Equal(expression.Value(email))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, err
	}

	output, err := dao.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(dao.Table),
		IndexName:                 aws.String(constants.EmailIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "GetProfileByEmail",
		}).Error("Failed to query user profile by email")
		return nil, err
	}
	if len(output.Items) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "user profile not found")
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(output.Items[0], &profile); err != nil {
		return nil, err
	}
	if profile.IsDeleted() {
		return nil, apperrors.Wrap(apperrors.ErrGone, "user profile has been deleted")
	}
	return &profile, nil
}

// UpdateProfile applies a typed patch. An empty patch is rejected before any
// remote call; a failed existence condition means the row is missing.
func (dao *ProfileDao) UpdateProfile(ctx context.Context, userID, profileType string, patch models.ProfilePatch) error {
	if patch.IsEmpty() {
		return apperrors.Wrap(apperrors.ErrBadRequest, "at least one field must be provided")
	}

	update := expression.Set(expression.Name("UpdatedAt"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)))
	if patch.Name != nil {
		update = update.Set(expression.Name("Name"), expression.Value(*patch.Name))
	}
	if patch.ProfilePicURL != nil {
		update = update.Set(expression.Name("ProfilePicURL"), expression.Value(*patch.ProfilePicURL))
	}

	condition := expression.AttributeExists(expression.Name("UserId"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = dao.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(dao.Table),
		Key: map[string]ddbtypes.AttributeValue{
			"UserId":      &ddbtypes.AttributeValueMemberS{Value: userID},
			"ProfileType": &ddbtypes.AttributeValueMemberS{Value: profileType},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.Wrap(apperrors.ErrNotFound, "user profile not found")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":   userID,
			"operation": "UpdateProfile",
		}).Error("Failed to update user profile")
		return err
	}
	return nil
}

// SoftDeleteProfile stamps DeletedAt on a live row. Already-deleted rows
// fail the condition and surface as gone.
func (dao *ProfileDao) SoftDeleteProfile(ctx context.Context, userID, profileType string) error {
	update := expression.Set(expression.Name("DeletedAt"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)))
	condition := expression.AttributeExists(expression.Name("UserId")).
		And(expression.Name("DeletedAt").Equal(expression.Value("")))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(condition).Build()
	if err != nil {
		return err
	}

	_, err = dao.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(dao.Table),
		Key: map[string]ddbtypes.AttributeValue{
			"UserId":      &ddbtypes.AttributeValueMemberS{Value: userID},
			"ProfileType": &ddbtypes.AttributeValueMemberS{Value: profileType},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.Wrap(apperrors.ErrGone, "user profile has already been deleted")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":   userID,
			"operation": "SoftDeleteProfile",
		}).Error("Failed to soft-delete user profile")
		return err
	}
	return nil
}
