// Package validation checks entity input at the storage boundary and
// derives URL slugs from titles.
package validation

import (
	"fmt"
	"strings"

	"github.com/studyatlas/studyatlas/pkg/api"
)

// Error is a validation failure naming the violated fields. It wraps
// api.ErrInvalid so callers can classify it without importing this
// package's internals.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Fields, ", "))
}

func (e *Error) Unwrap() error { return api.ErrInvalid }

// check collects missing-field names and produces one Error at the end.
type check struct {
	fields []string
}

func (c *check) required(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.fields = append(c.fields, name+" is required")
	}
}

func (c *check) positive(name string, value int64) {
	if value <= 0 {
		c.fields = append(c.fields, name+" must be positive")
	}
}

func (c *check) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}

// Scholarship validates a scholarship create/update input.
func Scholarship(s *api.Scholarship) error {
	var c check
	c.required("title", s.Title)
	c.required("overview", s.Overview)
	c.required("description", s.Description)
	c.required("country", s.Country)
	return c.err()
}

// Article validates an article create/update input.
func Article(a *api.Article) error {
	var c check
	c.required("title", a.Title)
	c.required("content", a.Content)
	c.required("summary", a.Summary)
	c.required("author", a.Author)
	c.required("category", a.Category)
	return c.err()
}

// Country validates a country create/update input.
func Country(co *api.Country) error {
	var c check
	c.required("name", co.Name)
	c.required("overview", co.Overview)
	c.required("description", co.Description)
	return c.err()
}

// University validates a university create/update input.
func University(u *api.University) error {
	var c check
	c.required("name", u.Name)
	c.required("description", u.Description)
	c.required("country", u.Country)
	c.required("location", u.Location)
	return c.err()
}

// News validates a news create/update input.
func News(n *api.News) error {
	var c check
	c.required("title", n.Title)
	c.required("content", n.Content)
	c.required("summary", n.Summary)
	c.required("category", n.Category)
	return c.err()
}

// MenuItem validates a navigation entry.
func MenuItem(m *api.MenuItem) error {
	var c check
	c.required("title", m.Title)
	c.required("url", m.URL)
	for i, child := range m.Children {
		c.required(fmt.Sprintf("children[%d].title", i), child.Title)
		c.required(fmt.Sprintf("children[%d].url", i), child.URL)
	}
	return c.err()
}

// User validates an admin-login principal.
func User(u *api.User) error {
	var c check
	c.required("username", u.Username)
	c.required("password", u.PasswordHash)
	return c.err()
}

// ActiveUser validates a site-member principal. A password hash is
// optional only for Google-linked accounts.
func ActiveUser(u *api.ActiveUser) error {
	var c check
	c.required("fullName", u.FullName)
	c.required("email", u.Email)
	if u.PasswordHash == "" && u.GoogleID == "" {
		c.fields = append(c.fields, "password is required for non-Google accounts")
	}
	return c.err()
}

// Comment validates a comment input.
func Comment(cm *api.Comment) error {
	var c check
	c.required("content", cm.Content)
	c.positive("articleId", cm.ArticleID)
	c.positive("userId", cm.UserID)
	return c.err()
}
