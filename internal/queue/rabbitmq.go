package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/streadway/amqp"
)

const RefreshQueue = "portfolio_refresh"

// * RefreshRequest asks the server to re-fetch its project list. An empty
// * Repositories list keeps the current one.
type RefreshRequest struct {
	Repositories []string  `json:"repositories"`
	RequestedAt  time.Time `json:"requested_at"`
}

func EncodeRefreshRequest(repositories []string, at time.Time) ([]byte, error) {
	if repositories == nil {
		repositories = []string{}
	}
	return json.Marshal(RefreshRequest{Repositories: repositories, RequestedAt: at.UTC()})
}

func DecodeRefreshRequest(body []byte) (*RefreshRequest, error) {
	var req RefreshRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := declare(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		conn:    conn,
		channel: channel,
	}, nil
}

func declare(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(
		RefreshQueue,
		true,
		false,
		false,
		false,
		nil,
	)
}

func (r *RabbitMQ) PublishRefreshRequest(ctx context.Context, repositories []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := EncodeRefreshRequest(repositories, time.Now())
	if err != nil {
		return err
	}

	return r.channel.Publish(
		"",
		RefreshQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// * ConsumeRefreshRequests delivers requests to handler until ctx is done or
// * the channel closes
func (r *RabbitMQ) ConsumeRefreshRequests(ctx context.Context, handler func(repositories []string) error) error {
	msgs, err := r.channel.Consume(
		RefreshQueue,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					logger.Warn("refresh queue delivery channel closed")
					return
				}

				req, err := DecodeRefreshRequest(d.Body)
				if err != nil {
					logger.Error("Error decoding refresh request: %v", err)
					continue
				}

				if err := handler(req.Repositories); err != nil {
					logger.Error("Error handling refresh request: %v", err)
				}
			}
		}
	}()

	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
