package queue

import (
	"fmt"

	"counsel-api/core/config"
	"counsel-api/core/logger"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks. A nil Client drops tasks silently so
// callers do not have to branch when the queue is disabled.
type Client struct {
	inner *asynq.Client
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if c == nil || c.inner == nil {
		return nil
	}
	info, err := c.inner.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Debug("Queue:Enqueue", "task", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

// NewServer builds the worker that processes queued tasks. Handlers are
// registered on the returned mux before Run.
func NewServer(cfg config.RedisConfig) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
	})
	return srv, asynq.NewServeMux()
}
