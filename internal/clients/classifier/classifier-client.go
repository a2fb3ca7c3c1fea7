package classifier_client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/init-pkg/soupis-parser/domain/app"
	"github.com/init-pkg/soupis-parser/internal/config"
)

// ErrUnavailable is the single outcome for every transport, timeout or body
// failure of the classification service. Callers fall back, they never retry.
var ErrUnavailable = errors.New("classifier unavailable")

const cacheTTL = 24 * time.Hour

type ClassifierClient struct {
	url     string
	timeout time.Duration
	client  *http.Client
	cache   *redis.Client // optional, nil disables caching
	log     *slog.Logger
}

var _ app.ClassifierClient = &ClassifierClient{}

func New(cfg *config.Config, cache *redis.Client, log *slog.Logger) *ClassifierClient {
	return &ClassifierClient{
		url:     cfg.Clients.Classifier.Url,
		timeout: cfg.Pipeline.ClassifierTimeout,
		client:  &http.Client{},
		cache:   cache,
		log:     log,
	}
}

// Classify makes the single bounded call per upload: the raw file plus the
// known project labels as multipart form fields. A cached normalized response
// for the same file bytes short-circuits the call entirely.
func (this *ClassifierClient) Classify(ctx context.Context, file []byte, filename string, meta app.FileMetadata) ([]app.ClassifiedPosition, error) {
	key := cacheKey(file)
	if cached, ok := this.cacheGet(ctx, key); ok {
		this.log.Info("classifier cache hit", "file", filename)
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, this.timeout)
	defer cancel()

	body, contentType, err := buildMultipart(file, filename, meta)
	if err != nil {
		this.log.Error("classifier request build failed", "error", err)
		return nil, ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, this.url+"/api/classify", body)
	if err != nil {
		this.log.Error("classifier request build failed", "error", err)
		return nil, ErrUnavailable
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	res, err := this.client.Do(req)
	if err != nil {
		this.log.Warn("classifier call failed", "error", err)
		return nil, ErrUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		this.log.Warn("classifier returned error status", "status", res.StatusCode, "body", string(raw))
		return nil, ErrUnavailable
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		this.log.Warn("classifier body read failed", "error", err)
		return nil, ErrUnavailable
	}

	positions, err := decodeEnvelope(raw)
	if err != nil {
		this.log.Warn("classifier returned unrecognized envelope", "error", err)
		return nil, ErrUnavailable
	}

	this.cacheSet(ctx, key, positions)
	return positions, nil
}

func buildMultipart(file []byte, filename string, meta app.FileMetadata) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file); err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"stavba": meta.Stavba,
		"objekt": meta.Objekt,
		"soupis": meta.Soupis,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func cacheKey(file []byte) string {
	sum := sha256.Sum256(file)
	return "classifier:" + hex.EncodeToString(sum[:])
}

func (this *ClassifierClient) cacheGet(ctx context.Context, key string) ([]app.ClassifiedPosition, bool) {
	if this.cache == nil {
		return nil, false
	}
	raw, err := this.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			this.log.Debug("classifier cache get failed", "error", err)
		}
		return nil, false
	}
	var positions []app.ClassifiedPosition
	if err := json.Unmarshal(raw, &positions); err != nil {
		return nil, false
	}
	return positions, true
}

func (this *ClassifierClient) cacheSet(ctx context.Context, key string, positions []app.ClassifiedPosition) {
	if this.cache == nil {
		return
	}
	raw, err := json.Marshal(positions)
	if err != nil {
		return
	}
	if err := this.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		this.log.Debug("classifier cache set failed", "error", err)
	}
}
