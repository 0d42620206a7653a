package model

import "strings"

type Reader struct {
	ID       int     `json:"reader_id"`
	FullName string  `json:"full_name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

type FindReader struct {
	ID *int `json:"reader_id"`
	// FullName is a case-insensitive substring filter.
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Limit    *int    `json:"limit"`
}

func (r *Reader) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return invalidField("full_name", "must not be empty")
	}
	return nil
}
