package data

import (
	"context"
	"errors"

	"mentorship/lib/apperrors"
	"mentorship/lib/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

// CognitoAPI is the subset of the Cognito client the identity repository uses.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	AdminGetUser(ctx context.Context, params *cognitoidentityprovider.AdminGetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminGetUserOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
}

// IdentityRepository defines the interface for user directory operations
type IdentityRepository interface {
	SignUp(ctx context.Context, email, password, name, role string) error
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmationCode(ctx context.Context, email string) error
	InitiateAuth(ctx context.Context, email, password string) (*models.AuthTokens, error)
	IsEmailVerified(ctx context.Context, email string) (bool, error)
	AdminDeleteUser(ctx context.Context, email string) error
}

// IdentityDao implements IdentityRepository against a Cognito user pool.
type IdentityDao struct {
	Cognito    CognitoAPI
	ClientID   string
	UserPoolID string
	Logger     *logrus.Logger
}

// SignUp registers a user in the pool with email, name, and role attributes.
func (dao *IdentityDao) SignUp(ctx context.Context, email, password, name, role string) error {
	_, err := dao.Cognito.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(dao.ClientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
			{Name: aws.String("custom:role"), Value: aws.String(role)},
		},
	})
	if err != nil {
		var usernameExists *cognitotypes.UsernameExistsException
		if errors.As(err, &usernameExists) {
			return apperrors.Wrap(apperrors.ErrConflict, "user already exists")
		}
		var invalidPassword *cognitotypes.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return apperrors.Wrap(apperrors.ErrBadRequest, "password does not meet the pool policy")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "SignUp",
		}).Error("Failed to register user with identity provider")
		return err
	}
	return nil
}

// ConfirmSignUp submits a confirmation code. Invalid and expired codes are
// distinguished bad-request outcomes.
func (dao *IdentityDao) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := dao.Cognito.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(dao.ClientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		var codeMismatch *cognitotypes.CodeMismatchException
		if errors.As(err, &codeMismatch) {
			return apperrors.Wrap(apperrors.ErrBadRequest, "invalid confirmation code")
		}
		var expiredCode *cognitotypes.ExpiredCodeException
		if errors.As(err, &expiredCode) {
			return apperrors.Wrap(apperrors.ErrBadRequest, "confirmation code expired")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "ConfirmSignUp",
		}).Error("Failed to confirm sign-up")
		return err
	}
	return nil
}

// ResendConfirmationCode triggers a new confirmation code delivery.
func (dao *IdentityDao) ResendConfirmationCode(ctx context.Context, email string) error {
	_, err := dao.Cognito.ResendConfirmationCode(ctx, &cognitoidentityprovider.ResendConfirmationCodeInput{
		ClientId: aws.String(dao.ClientID),
		Username: aws.String(email),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "ResendConfirmationCode",
		}).Error("Failed to resend confirmation code")
		return err
	}
	return nil
}

// InitiateAuth performs the username/password flow and returns the token set.
func (dao *IdentityDao) InitiateAuth(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	output, err := dao.Cognito.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: cognitotypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(dao.ClientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *cognitotypes.NotAuthorizedException
		var userNotFound *cognitotypes.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &userNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "InitiateAuth",
		}).Error("Failed to authenticate with identity provider")
		return nil, err
	}
	if output.AuthenticationResult == nil {
		return nil, errors.New("empty authentication result from identity provider")
	}

	tokens := &models.AuthTokens{
		AccessToken:  aws.ToString(output.AuthenticationResult.AccessToken),
		IDToken:      aws.ToString(output.AuthenticationResult.IdToken),
		RefreshToken: aws.ToString(output.AuthenticationResult.RefreshToken),
	}
	return tokens, nil
}

// IsEmailVerified reads the email_verified attribute of a pool user.
func (dao *IdentityDao) IsEmailVerified(ctx context.Context, email string) (bool, error) {
	output, err := dao.Cognito.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(dao.UserPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var userNotFound *cognitotypes.UserNotFoundException
		if errors.As(err, &userNotFound) {
			return false, apperrors.Wrap(apperrors.ErrNotFound, "user not found")
		}
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "IsEmailVerified",
		}).Error("Failed to look up user verification status")
		return false, err
	}

	for _, attr := range output.UserAttributes {
		if aws.ToString(attr.Name) == "email_verified" {
			return aws.ToString(attr.Value) == "true", nil
		}
	}
	return false, nil
}

// AdminDeleteUser removes a pool user. Used as registration compensation.
func (dao *IdentityDao) AdminDeleteUser(ctx context.Context, email string) error {
	_, err := dao.Cognito.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(dao.UserPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		dao.Logger.WithError(err).WithFields(logrus.Fields{
			"email":     email,
			"operation": "AdminDeleteUser",
		}).Error("Failed to delete user from identity provider")
		return err
	}
	return nil
}
