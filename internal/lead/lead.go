// Package lead implements waitlist signups: validation driven by the
// project's form configuration, persistence, counter updates and the
// best-effort owner notification.
package lead

import "time"

// Status tracks what the owner did with a lead. The capture flow always
// writes StatusNew; transitions happen only from the dashboard.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted:
		return true
	}
	return false
}

// CaptureMeta is the visitor metadata recorded with each submission.
type CaptureMeta struct {
	IP        string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Referrer  string `bson:"referrer,omitempty" json:"referrer,omitempty"`
}

// Lead is one captured signup. Created exactly once per submission and never
// mutated by the capture flow.
type Lead struct {
	ID        string      `bson:"_id" json:"id"`
	ProjectID string      `bson:"projectId" json:"projectId"`
	Name      string      `bson:"name,omitempty" json:"name,omitempty"`
	Email     string      `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string      `bson:"phone,omitempty" json:"phone,omitempty"`
	Meta      CaptureMeta `bson:"meta" json:"meta"`
	Status    Status      `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
}

// Submission is the raw form input from the public page.
type Submission struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
