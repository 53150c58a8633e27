// Package mail carries the transactional email pipeline: API handlers
// enqueue send tasks, a separate worker process delivers them.
package mail

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSend is the task type for sending transactional emails.
	TaskTypeSend = "mail:send"
)

// SendPayload describes the information required to send an email.
type SendPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendTask constructs an Asynq task carrying the payload.
func NewSendTask(payload SendPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSend, data), nil
}
