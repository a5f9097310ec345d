// Package types contains shared types used across the qa-acceptor runner.
package types

import "time"

// Category is a named, tag-filtered group of browser checks. The set of
// categories is static configuration, not discovered at runtime.
type Category struct {
	Name        string
	Description string
	Tag         string
	Critical    bool
	Quick       bool
	Timeout     time.Duration
}

// Args returns the argument list passed to the runner binary for this
// category. The browser-automation framework itself is an opaque collaborator;
// all we own is the tag filter.
func (c Category) Args() []string {
	return []string{"playwright", "test", "--grep", c.Tag, "--reporter=line"}
}
