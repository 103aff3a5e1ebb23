// Package dto holds the JSON bodies of the HTTP endpoints.
package dto

import (
	"fmt"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a success envelope.
func Succeeded(message string) Response {
	return Response{Success: true, Message: message}
}

// Failed builds a failure envelope.
func Failed(err error) Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Response{Success: false, Error: msg}
}

// SyncMessage summarizes a batch for the response message.
func SyncMessage(report *vo.SyncBatchReport) string {
	if report == nil {
		return "YouTube sync completed: no educators due"
	}
	if report.Interrupted {
		return fmt.Sprintf("YouTube sync interrupted: %d educators processed (%d succeeded, %d failed), %d left for the next run",
			report.Processed(), report.Succeeded, report.Failed, report.Skipped)
	}
	if report.Processed() == 0 {
		return "YouTube sync completed: no educators due"
	}
	return fmt.Sprintf("YouTube sync completed: %d educators processed (%d succeeded, %d failed)",
		report.Processed(), report.Succeeded, report.Failed)
}
