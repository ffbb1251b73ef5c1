package models

// MentorPackage represents a service offering created by a mentor. The
// MentorPackages table is keyed by MentorId (partition) and PackageId (sort)
// with a global secondary index on PackageId for ownership lookups.
type MentorPackage struct {
	MentorID    string  `json:"mentor_id" dynamodbav:"MentorId"`
	PackageID   string  `json:"package_id" dynamodbav:"PackageId"`
	PackageName string  `json:"package_name" dynamodbav:"PackageName"`
	Description string  `json:"description" dynamodbav:"Description"`
	Price       float64 `json:"price" dynamodbav:"Price"`
	CreatedAt   string  `json:"created_at" dynamodbav:"CreatedAt"`
	UpdatedAt   string  `json:"updated_at" dynamodbav:"UpdatedAt"`
}

// CreatePackageRequest is the POST /add-package body.
type CreatePackageRequest struct {
	PackageName string  `json:"packageName"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CreatePackageResponse is returned after a successful package creation.
type CreatePackageResponse struct {
	Message   string `json:"message"`
	PackageID string `json:"packageId"`
}

// PackageListResponse is the GET /list-packages body.
type PackageListResponse struct {
	Packages []MentorPackage `json:"packages"`
}
