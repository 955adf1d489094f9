package types

import "time"

type SendResult struct {
	RowIndex        int           `json:"rowIndex"`
	Ok              bool          `json:"ok"`
	StatusCode      int           `json:"statusCode,omitempty"`
	ResponsePreview string        `json:"responseBodyPreview,omitempty"`
	Error           string        `json:"error,omitempty"`
	Attempts        int           `json:"attempts"`
	Duration        time.Duration `json:"duration"`
	SentAt          time.Time     `json:"sentAt"`
}

type SendStatus string

const (
	SendStatusPending SendStatus = "pending"
	SendStatusOk      SendStatus = "ok"
	SendStatusFailed  SendStatus = "failed"
)

func (result SendResult) Status() SendStatus {
	if result.Attempts == 0 {
		return SendStatusPending
	}
	if result.Ok {
		return SendStatusOk
	}
	return SendStatusFailed
}
