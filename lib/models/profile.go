package models

// UserProfile represents a role-scoped user record in the UserProfiles table.
// The table is keyed by UserId (partition) and ProfileType (sort) with a
// global secondary index on Email.
type UserProfile struct {
	UserID        string `json:"user_id" dynamodbav:"UserId"`
	ProfileType   string `json:"profile_type" dynamodbav:"ProfileType"`
	Name          string `json:"name" dynamodbav:"Name"`
	Email         string `json:"email" dynamodbav:"Email"`
	ProfilePicURL string `json:"profile_pic_url" dynamodbav:"ProfilePicURL"`
	CreatedAt     string `json:"created_at" dynamodbav:"CreatedAt"`
	UpdatedAt     string `json:"updated_at" dynamodbav:"UpdatedAt"`
	// DeletedAt is empty for live rows; a non-empty timestamp marks the row
	// soft-deleted.
	DeletedAt string `json:"deleted_at,omitempty" dynamodbav:"DeletedAt"`
}

// IsDeleted reports whether the profile has been soft-deleted.
func (p *UserProfile) IsDeleted() bool {
	return p.DeletedAt != ""
}

// ProfilePatch enumerates the mutable profile fields. Only non-nil fields
// become part of the update expression.
type ProfilePatch struct {
	Name          *string `json:"Name,omitempty"`
	ProfilePicURL *string `json:"ProfilePicURL,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.ProfilePicURL == nil
}
