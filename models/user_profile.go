package models

import "time"

// Preferences controls which candidates a user wants to see in discovery
type Preferences struct {
	GenderPreference string `dynamodbav:"genderPreference,omitempty" json:"genderPreference,omitempty"` // empty = no filter
	MinAge           int    `dynamodbav:"minAge,omitempty" json:"minAge,omitempty"`
	MaxAge           int    `dynamodbav:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID      string      `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	FullName    string      `dynamodbav:"fullName,omitempty" json:"fullName,omitempty"`
	Bio         string      `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Gender      string      `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	DOB         string      `dynamodbav:"dob,omitempty" json:"dob,omitempty"` // YYYY-MM-DD
	IsActive    bool        `dynamodbav:"isActive" json:"isActive"`
	Photos      []string    `dynamodbav:"photos,omitempty" json:"photos,omitempty"` // ordered S3 keys
	Preferences Preferences `dynamodbav:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt   string      `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Age derives the user's age in whole years from the stored DOB.
// Returns 0 when the DOB is missing or unparseable.
func (p *UserProfile) Age(now time.Time) int {
	if p.DOB == "" {
		return 0
	}
	dob, err := time.Parse("2006-01-02", p.DOB)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
