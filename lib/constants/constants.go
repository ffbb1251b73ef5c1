package constants

// SSM Parameter Store paths. Values can also be supplied directly through
// environment variables; see lib/config.
const (
	SSM_PATH_PREFIX          = "/mentorship"
	USER_PROFILES_TABLE      = "/mentorship/USER_PROFILES_TABLE"
	MENTOR_PACKAGES_TABLE    = "/mentorship/MENTOR_PACKAGES_TABLE"
	BUCKET_NAME              = "/mentorship/BUCKET_NAME"
	COGNITO_CLIENT_ID        = "/mentorship/COGNITO_CLIENT_ID"
	COGNITO_USER_POOL_ID     = "/mentorship/COGNITO_USER_POOL_ID"
	SLACK_WEBHOOK_SECRET_ARN = "/mentorship/SLACK_WEBHOOK_SECRET_ARN"
)

// Profile roles. These are the canonical stored values; request input is
// normalized before comparison.
const (
	RoleMentor = "Mentor"
	RoleMentee = "Mentee"
)

// DynamoDB index names.
const (
	EmailIndexName     = "EmailIndex"
	PackageIdIndexName = "PackageIdIndex"
)

// Custom request headers.
const (
	HeaderFileContentType = "x-file-content-type"
	HeaderUserID          = "x-user-id"
)
