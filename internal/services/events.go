package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/fungi-kb/apiserver/internal/mq"
	"github.com/fungi-kb/apiserver/types"
)

// publishEvent sends a change event to the broker. Publishing is best
// effort: a broker failure is logged and never fails the request that
// triggered it.
func publishEvent(ctx context.Context, events *mq.MQ, kind, subjectID, actor string) {
	if events == nil {
		return
	}

	event := types.Event{
		Kind:       kind,
		SubjectID:  subjectID,
		Actor:      actor,
		OccurredAt: time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("event marshal failed: %v", err)
		return
	}

	attrs := map[string]string{"kind": kind}
	if _, err := events.Publish(ctx, mq.EventsChannel, data, attrs); err != nil {
		log.Printf("event publish failed (%s %s): %v", kind, subjectID, err)
	}
}
