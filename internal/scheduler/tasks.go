package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAnnouncementExpiry = "announcements.expiry"

type AnnouncementExpiryPayload struct {
	AnnouncementID string `json:"announcementId"`
}

func NewAnnouncementExpiryTask(payload AnnouncementExpiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnnouncementExpiry, data), nil
}

func ParseAnnouncementExpiryPayload(task *asynq.Task) (AnnouncementExpiryPayload, error) {
	var payload AnnouncementExpiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AnnouncementExpiryPayload{}, err
	}
	return payload, nil
}
