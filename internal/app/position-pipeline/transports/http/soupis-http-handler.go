package soupis_http_handler

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	nova_ctx "github.com/init-pkg/nova/shared/ctx"

	"github.com/init-pkg/soupis-parser/domain/app"
	"github.com/init-pkg/soupis-parser/domain/dtos"
	otskp_search_service "github.com/init-pkg/soupis-parser/internal/app/otskp-search"
)

type SoupisHttpHandler struct {
	service     app.SoupisPipelineService
	repository  app.PositionRepository
	otskpSearch *otskp_search_service.Service
	log         *slog.Logger
}

func New(
	service app.SoupisPipelineService,
	repository app.PositionRepository,
	otskpSearch *otskp_search_service.Service,
	log *slog.Logger,
) *SoupisHttpHandler {
	return &SoupisHttpHandler{service, repository, otskpSearch, log}
}

func (this *SoupisHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/soupis")

	app.Post("/manual-upload", this.manualUpload)
	app.Get("/otskp-suggest", this.otskpSuggest)
}

func (this *SoupisHttpHandler) manualUpload(fctx fiber.Ctx) error {
	var ctx = nova_ctx.Wrap(fctx.Context())

	var req = dtos.SoupisManualUploadRequest{
		Stavba: fctx.FormValue("stavba"),
		Objekt: fctx.FormValue("objekt"),
	}
	if jobId, err := strconv.ParseUint(fctx.FormValue("job_id"), 10, 64); err == nil {
		req.JobId = jobId
	}

	fh, err := fctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}
	defer f.Close()
	file, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}

	hints := app.FileMetadata{Stavba: req.Stavba, Objekt: req.Objekt}
	res, e := this.service.Resolve(ctx, file, fh.Filename, hints)
	if e != nil {
		this.log.Error("resolution failed", "file", fh.Filename, "error", e)
		return fiber.NewError(fiber.StatusUnprocessableEntity, e.Error())
	}

	sum := sha256.Sum256(file)
	if e := this.repository.SaveRound(ctx, fh.Filename, hex.EncodeToString(sum[:]), res); e != nil {
		this.log.Error("persist failed", "file", fh.Filename, "error", e)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to persist result")
	}

	return fctx.JSON(res)
}

func (this *SoupisHttpHandler) otskpSuggest(fctx fiber.Ctx) error {
	var ctx = nova_ctx.Wrap(fctx.Context())

	query := fctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing q")
	}
	limit, err := strconv.Atoi(fctx.Query("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}

	suggestions, err := this.otskpSearch.SuggestCodes(ctx, query, limit)
	if err != nil {
		this.log.Error("otskp suggestion failed", "query", query, "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "suggestion unavailable")
	}

	return fctx.JSON(suggestions)
}
