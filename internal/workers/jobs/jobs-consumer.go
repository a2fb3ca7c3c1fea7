package jobs_worker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	nova_ctx "github.com/init-pkg/nova/shared/ctx"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/init-pkg/soupis-parser/domain/app"
	callback_client "github.com/init-pkg/soupis-parser/internal/clients/callback"
	"github.com/init-pkg/soupis-parser/internal/config"
)

// ParseJobMessage is one queued parse job. The file arrives on a shared
// volume; the backend only ships its path.
type ParseJobMessage struct {
	JobID    uint64 `json:"job_id"`
	FilePath string `json:"file_path"`
	Stavba   string `json:"stavba,omitempty"`
	Objekt   string `json:"objekt,omitempty"`
}

// Consumer drains the parse-job queue: one pipeline run per message, outcome
// reported over the callback client.
type Consumer struct {
	cfg        *config.Config
	service    app.SoupisPipelineService
	repository app.PositionRepository
	callback   *callback_client.CallbackClient
	log        *slog.Logger
}

func New(
	cfg *config.Config,
	service app.SoupisPipelineService,
	repository app.PositionRepository,
	callback *callback_client.CallbackClient,
	log *slog.Logger,
) *Consumer {
	return &Consumer{cfg, service, repository, callback, log}
}

// Run blocks until ctx is cancelled or the connection dies.
func (this *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(this.cfg.Clients.Amqp.Url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	queue := this.cfg.Clients.Amqp.Queue
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	this.log.Info("parse-job consumer started", "queue", queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("amqp deliveries channel closed")
			}
			this.handle(ctx, d)
		}
	}
}

func (this *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var msg ParseJobMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		this.log.Error("malformed parse-job message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	log := this.log.With("job_id", msg.JobID, "file", msg.FilePath)

	if err := this.process(ctx, msg); err != nil {
		log.Error("parse job failed", "error", err)
		if e := this.callback.MarkJobFailed(msg.JobID, err.Error()); e != nil {
			log.Error("failed to report job failure", "error", e)
		}
		_ = d.Nack(false, false)
		return
	}

	log.Info("parse job finished")
	_ = d.Ack(false)
}

func (this *Consumer) process(ctx context.Context, msg ParseJobMessage) error {
	file, err := os.ReadFile(msg.FilePath)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}

	nctx := nova_ctx.Wrap(ctx)
	hints := app.FileMetadata{Stavba: msg.Stavba, Objekt: msg.Objekt}
	filename := filepath.Base(msg.FilePath)

	res, e := this.service.Resolve(nctx, file, filename, hints)
	if e != nil {
		return e
	}

	sum := sha256.Sum256(file)
	if e := this.repository.SaveRound(nctx, filename, hex.EncodeToString(sum[:]), res); e != nil {
		return e
	}

	return this.callback.MarkJobSuccess(msg.JobID, "", map[string]string{
		"resolution_source": res.Source.String(),
		"positions":         fmt.Sprintf("%d", len(res.Positions)),
	})
}
