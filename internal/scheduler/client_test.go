package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "test" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestScheduleAnnouncementExpiryEnqueues(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	err = client.ScheduleAnnouncementExpiry(context.Background(),
		AnnouncementExpiryPayload{AnnouncementID: "6b4a2e4e-0000-0000-0000-000000000001"},
		time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ScheduleAnnouncementExpiry() error = %v", err)
	}

	// asynq stores scheduled tasks in a per-queue sorted set.
	if !mr.Exists("asynq:{test}:scheduled") {
		t.Error("scheduled task not found in redis")
	}
}

func TestAnnouncementExpiryTaskRoundTrip(t *testing.T) {
	payload := AnnouncementExpiryPayload{AnnouncementID: "abc"}

	task, err := NewAnnouncementExpiryTask(payload)
	if err != nil {
		t.Fatalf("NewAnnouncementExpiryTask() error = %v", err)
	}
	if task.Type() != TaskAnnouncementExpiry {
		t.Errorf("task type = %q, want %q", task.Type(), TaskAnnouncementExpiry)
	}

	parsed, err := ParseAnnouncementExpiryPayload(task)
	if err != nil {
		t.Fatalf("ParseAnnouncementExpiryPayload() error = %v", err)
	}
	if parsed != payload {
		t.Errorf("parsed = %+v, want %+v", parsed, payload)
	}
}
