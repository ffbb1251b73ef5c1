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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PackageRepository defines the interface for mentor package operations
type PackageRepository interface {
	CreatePackage(ctx context.Context, pkg *models.MentorPackage) (*models.MentorPackage, error)
	GetPackage(ctx context.Context, mentorID, packageID string) (*models.MentorPackage, error)
	GetPackagesByMentor(ctx context.Context, mentorID string) ([]models.MentorPackage, error)
	DeletePackage(ctx context.Context, mentorID, packageID string) error
}

// PackageDao implements PackageRepository against the MentorPackages table.
type PackageDao struct {
	DB     DynamoDBAPI
	Table  string
	Logger *logrus.Logger
}

// CreatePackage writes a new package row with a generated identifier.
func (dao *PackageDao) CreatePackage(ctx context.Context, pkg *models.MentorPackage) (*models.MentorPackage, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	pkg.PackageID = uuid.New().String()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	item, err := attributevalue.MarshalMap(pkg)
	if err != nil {
		return nil, err
	}

	_, err = dao.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(dao.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PackageId)"),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"mentor_id": pkg.MentorID,
			"operation": "CreatePackage",
		}).Error("Failed to create package")
		return nil, err
	}

	dao.Logger.WithFields(logrus.Fields{
		"mentor_id":  pkg.MentorID,
		"package_id": pkg.PackageID,
		"operation":  "CreatePackage",
	}).Info("Package created")
	return pkg, nil
}

// GetPackage reads one package owned by the given mentor.
func (dao *PackageDao) GetPackage(ctx context.Context, mentorID, packageID string) (*models.MentorPackage, error) {
	output, err := dao.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(dao.Table),
		Key: map[string]ddbtypes.AttributeValue{
			"MentorId":  &ddbtypes.AttributeValueMemberS{Value: mentorID},
			"PackageId": &ddbtypes.AttributeValueMemberS{Value: packageID},
		},
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"package_id": packageID,
			"operation":  "GetPackage",
		}).Error("Failed to get package")
		return nil, err
	}
	if output.Item == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "package not found")
	}

	var pkg models.MentorPackage
	if err := attributevalue.UnmarshalMap(output.Item, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetPackagesByMentor returns every package under the mentor's partition.
// No packages is an empty slice, not an error.
func (dao *PackageDao) GetPackagesByMentor(ctx context.Context, mentorID string) ([]models.MentorPackage, error) {
	keyCondition := expression.Key("MentorId").Equal(expression.Value(mentorID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, err
	}

	output, err := dao.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(dao.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"mentor_id": mentorID,
			"operation": "GetPackagesByMentor",
		}).Error("Failed to query packages")
		return nil, err
	}

	packages := make([]models.MentorPackage, 0, len(output.Items))
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// DeletePackage removes a package after confirming ownership. The package is
// first located through the PackageId index so a row owned by someone else
// is a forbidden outcome, distinct from a row that does not exist.
func (dao *PackageDao) DeletePackage(ctx context.Context, mentorID, packageID string) error {
	owner, err := dao.findOwner(ctx, packageID)
	if err != nil {
		return err
	}
	if owner != mentorID {
		return apperrors.Wrap(apperrors.ErrForbidden, "you are not authorized to delete this package")
	}

	_, err = dao.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(dao.Table),
		Key: map[string]ddbtypes.AttributeValue{
			"MentorId":  &ddbtypes.AttributeValueMemberS{Value: mentorID},
			"PackageId": &ddbtypes.AttributeValueMemberS{Value: packageID},
		},
		ConditionExpression: aws.String("attribute_exists(PackageId)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.Wrap(apperrors.ErrNotFound, "package not found")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"package_id": packageID,
			"operation":  "DeletePackage",
		}).Error("Failed to delete package")
		return err
	}

	dao.Logger.WithFields(logrus.Fields{
		"mentor_id":  mentorID,
		"package_id": packageID,
		"operation":  "DeletePackage",
	}).Info("Package deleted")
	return nil
}

func (dao *PackageDao) findOwner(ctx context.Context, packageID string) (string, error) {
	keyCondition := expression.Key("PackageId").Equal(expression.Value(packageID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return "", err
	}

	output, err := dao.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(dao.Table),
		IndexName:                 aws.String(constants.PackageIdIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"package_id": packageID,
			"operation":  "findOwner",
		}).Error("Failed to look up package owner")
		return "", err
	}
	if len(output.Items) == 0 {
		return "", apperrors.Wrap(apperrors.ErrNotFound, "package not found")
	}

	var pkg models.MentorPackage
	if err := attributevalue.UnmarshalMap(output.Items[0], &pkg); err != nil {
		return "", err
	}
	return pkg.MentorID, nil
}
