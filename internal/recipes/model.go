// Package recipes handles community recipe submissions: shoppers send a
// brewing recipe through the storefront and the team reviews it before
// publishing.
package recipes

import "time"

const StatusPending = "pending"

// Submission is a community recipe waiting for review.
type Submission struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	RecipeName  string    `json:"recipe_name" gorm:"column:recipe_name"`
	Category    string    `json:"category" gorm:"column:category"`
	Difficulty  string    `json:"difficulty" gorm:"column:difficulty"`
	TotalTime   string    `json:"total_time" gorm:"column:total_time"`
	Yield       string    `json:"yield" gorm:"column:yield"`
	Description string    `json:"description" gorm:"column:description"`
	Ingredients []string  `json:"ingredients" gorm:"column:ingredients;serializer:json"`
	Steps       []string  `json:"steps" gorm:"column:steps;serializer:json"`
	AuthorName  string    `json:"author_name" gorm:"column:author_name"`
	Instagram   string    `json:"instagram,omitempty" gorm:"column:instagram"`
	Email       string    `json:"email,omitempty" gorm:"column:email"`
	Story       string    `json:"story,omitempty" gorm:"column:story"`
	Status      string    `json:"status" gorm:"column:status"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"column:submitted_at"`
}

// TableName keeps the table aligned with the migration.
func (Submission) TableName() string {
	return "recipe_submissions"
}
