// Package project owns the waitlist page documents: configuration blob,
// publish lifecycle and the denormalized visit/signup counters.
package project

import "time"

// Status is the publish lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPaused    Status = "paused"
)

// FormFields toggles which capture fields the public form shows. Validation
// of submissions is driven by this, per project, not by a fixed schema.
type FormFields struct {
	Name  bool `bson:"name" json:"name"`
	Email bool `bson:"email" json:"email"`
	Phone bool `bson:"phone" json:"phone"`
}

// FAQItem is one question/answer pair on the public page.
type FAQItem struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// Config is the free-form page configuration edited in the dashboard.
type Config struct {
	Title      string     `bson:"title" json:"title"`
	Tagline    string     `bson:"tagline,omitempty" json:"tagline,omitempty"`
	ThemeColor string     `bson:"themeColor,omitempty" json:"themeColor,omitempty"`
	ButtonText string     `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	FormFields FormFields `bson:"formFields" json:"formFields"`
	Benefits   []string   `bson:"benefits,omitempty" json:"benefits,omitempty"`
	FAQ        []FAQItem  `bson:"faq,omitempty" json:"faq,omitempty"`
}

// Stats is the embedded analytics aggregate. Counters are maintained with
// atomic increments; the conversion rate is recomputed in the same update
// pipeline and is 0 while there are no visits.
type Stats struct {
	Visits         int64      `bson:"visits" json:"visits"`
	Signups        int64      `bson:"signups" json:"signups"`
	ConversionRate float64    `bson:"conversionRate" json:"conversionRate"`
	LastVisitAt    *time.Time `bson:"lastVisitAt,omitempty" json:"lastVisitAt,omitempty"`
	LastSignupAt   *time.Time `bson:"lastSignupAt,omitempty" json:"lastSignupAt,omitempty"`
}

// Project is one waitlist landing page.
type Project struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	Slug      string    `bson:"slug" json:"slug"`
	Status    Status    `bson:"status" json:"status"`
	Config    Config    `bson:"config" json:"config"`
	Stats     Stats     `bson:"stats" json:"stats"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsPublished reports whether the page is publicly reachable.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}
