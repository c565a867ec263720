package queue

// consumer.go contains the background consumer that listens to the
// catalog.changed queue and appends an audit line per mutation to
// logs/catalog.log. It runs a reconnect loop so a broker outage never takes
// the API down; processing errors are logged and the offending message is
// rejected without requeue.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/reelhouse/movie-catalog/internal/logger"
)

const catalogQueueName = "catalog.changed"

// StartCatalogConsumer connects to RabbitMQ using the given URL, declares
// the durable catalog.changed queue and consumes messages forever. Intended
// to run in its own goroutine from main.
func StartCatalogConsumer(url string) {
	log := logger.Get(logger.InfoLevel)

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warnw("catalog-consumer dial failed", "err", err, "retry_in", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Warnw("catalog-consumer loop ended", "err", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(catalogQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(catalogQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range msgs {
		if err := appendAuditLine(d.Body); err != nil {
			logger.Get(logger.InfoLevel).Warnw("catalog-consumer write failed", "err", err)
			_ = d.Reject(false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// appendAuditLine writes one human-readable line per event to
// logs/catalog.log, creating the directory on first use.
func appendAuditLine(body []byte) error {
	var ev CatalogChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "catalog.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s movie %s %q by user %d at %s\n",
		ev.Action, ev.MovieID, ev.Title, ev.ActorID, ev.OccurredAt)
	_, err = f.WriteString(line)
	return err
}
