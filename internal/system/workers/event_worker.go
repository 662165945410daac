package workers

import (
	"fmt"

	eventModel "github.com/wso2/entity-tokenization-service/internal/events/model"
	eventStore "github.com/wso2/entity-tokenization-service/internal/events/store"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
)

var EventQueue chan eventModel.Event

// StartEventWorker starts the background writer draining externally
// submitted events into the event store. Lifecycle events written by the
// tokenization coordinator bypass the queue and are persisted inline.
func StartEventWorker() {

	EventQueue = make(chan eventModel.Event, constants.DefaultQueueSize)

	go func() {
		for event := range EventQueue {
			if err := eventStore.InsertEvent(event); err != nil {
				log.GetLogger().Error(fmt.Sprintf("Failed to persist queued event: %s for item: %s",
					event.EventID, event.DFID), log.Error(err))
			}
		}
	}()
}

func EnqueueEvent(event eventModel.Event) {
	if EventQueue != nil {
		EventQueue <- event
	}
}

// EventWorkerQueue Define a struct that implements the EventQueue interface
type EventWorkerQueue struct{}

// Enqueue Implement the Enqueue method for EventWorkerQueue
func (q *EventWorkerQueue) Enqueue(event eventModel.Event) {
	EnqueueEvent(event)
}
