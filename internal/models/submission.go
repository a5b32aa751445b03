package models

import "time"

// Report types offered by the bug report form. The store accepts any value.
var ReportTypes = []string{"bug", "gameplay", "violation", "exploit", "other"}

// BugReport is a visitor-submitted bug or rule violation report
type BugReport struct {
	ID              string    `json:"_id"`
	ReporterName    string    `json:"reporterName"`
	ReporterContact string    `json:"reporterContact"`
	ReportType      string    `json:"reportType"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Screenshot      string    `json:"screenshot,omitempty"`
	SubmissionDate  time.Time `json:"submissionDate"`
}

// RecordID implements Record.
func (b BugReport) RecordID() string { return b.ID }

// ContactSubmission is a message sent through the contact form
type ContactSubmission struct {
	ID             string    `json:"_id"`
	SenderName     string    `json:"senderName"`
	SenderEmail    string    `json:"senderEmail"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	SubmissionDate time.Time `json:"submissionDate"`
}

// RecordID implements Record.
func (c ContactSubmission) RecordID() string { return c.ID }
