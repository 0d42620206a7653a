package model

import "strings"

type Library struct {
	ID      int    `json:"library_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type FindLibrary struct {
	ID *int `json:"library_id"`
	// Name is a case-insensitive substring filter.
	Name *string `json:"name"`
	// The maximum number of libraries to return.
	Limit *int `json:"limit"`
}

func (l *Library) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	if strings.TrimSpace(l.Address) == "" {
		return invalidField("address", "must not be empty")
	}
	return nil
}

type Theme struct {
	ID   int    `json:"theme_id"`
	Name string `json:"name"`
}

type FindTheme struct {
	ID *int `json:"theme_id"`
	// Name is a case-insensitive substring filter.
	Name  *string `json:"name"`
	Limit *int    `json:"limit"`
}

func (t *Theme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	return nil
}

// Publisher is kept for schema parity; no form edits it today.
type Publisher struct {
	ID      int     `json:"publisher_id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

type FindPublisher struct {
	ID    *int    `json:"publisher_id"`
	Name  *string `json:"name"`
	Limit *int    `json:"limit"`
}

func (p *Publisher) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	return nil
}
