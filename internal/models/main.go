// Package models defines the core data structures for operators, credential
// records, login events and label jobs.
package models

import "time"

// UserInfo holds the operator metadata recovered from a matching credential record.
type UserInfo struct {
	// Surname is the operator's family name.
	Surname string `json:"surname"`
	// Name is the operator's given name.
	Name string `json:"name"`
	// Prefix is the short operator code stamped onto printed labels.
	Prefix string `json:"prefix"`
}

// StoredCredential is one decoded line of the credential file.
type StoredCredential struct {
	// PasswordHash is the lower-case hex SHA-256 digest of the record's password field.
	PasswordHash string
	// RawLine holds every decoded field joined with commas.
	RawLine string
	// Line is the 1-based line number in the source file.
	Line int
}

// AuthFailureReason classifies why an authentication attempt did not succeed.
type AuthFailureReason string

const (
	// NotFound means the password hash matched no stored record.
	NotFound AuthFailureReason = "not_found"
	// MalformedRecord means the password matched a record without enough metadata fields.
	MalformedRecord AuthFailureReason = "malformed_record"
	// FileUnavailable means the credential file could not be opened or read.
	FileUnavailable AuthFailureReason = "file_unavailable"
	// DecodeError means a line of the credential file could not be decoded.
	DecodeError AuthFailureReason = "decode_error"
)

// LoginOutcome is the result recorded for a login attempt.
type LoginOutcome string

// Success is recorded for an accepted login; failures reuse their AuthFailureReason.
const Success LoginOutcome = "success"

// LoginEvent is an audit entry for one authentication attempt.
// It never carries the submitted password.
type LoginEvent struct {
	ID         string       `json:"id"`
	Station    string       `json:"station"`
	Outcome    LoginOutcome `json:"outcome"`
	Prefix     string       `json:"prefix,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// LabelSpec describes one configured label template.
type LabelSpec struct {
	// Key is the configuration key of the label (e.g. "label01").
	Key string `json:"key"`
	// Path is the label template file handled by the external print engine.
	Path string `json:"path"`
	// Printer is the printer the template is assigned to.
	Printer string `json:"printer"`
	// Copies is the number of copies to print.
	Copies int `json:"copies"`
}

// LabelJob is a label prepared for printing: the record file has been written
// and the job is ready to be handed to the print engine.
type LabelJob struct {
	LabelSpec
	Serial     string    `json:"serial"`
	Prefix     string    `json:"prefix"`
	RecordPath string    `json:"record_path"`
	CreatedAt  time.Time `json:"created_at"`
}
