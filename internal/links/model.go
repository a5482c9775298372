package links

import "time"

// Link is one entry of the public link-in-bio page.
type Link struct {
	ID          string
	Name        string
	URL         string
	Description string
	Tag         *string // nil when the link has no tag
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
