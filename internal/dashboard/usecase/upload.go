package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

var uploadExtensions = []string{".csv", ".xlsx", ".xls"}

type csvInspection struct {
	rows    int64
	columns []string
	err     error
}

// Upload forwards the file to the backend and waits for its summary. CSV
// files are inspected locally while they stream through. A successful
// upload bumps the refresh trigger.
func (u *Usecase) Upload(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	if u.store == nil || u.backend == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	filename = filepath.Base(strings.TrimSpace(filename))
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(uploadExtensions, ext) {
		return UploadResult{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported file type %q, expected one of %s", ext, strings.Join(uploadExtensions, ", ")))
	}

	uploadID := u.uploadID.Generate()
	if err := u.store.CreateUpload(ctx, entity.UploadMeta{
		ID:        uploadID,
		Filename:  filename,
		Status:    entity.UploadStatusProcessing,
		StartedAt: u.clock.Now().Unix(),
	}); err != nil {
		return UploadResult{}, normalizeErr(err)
	}

	body := r
	var inspected chan csvInspection
	var pw *io.PipeWriter
	if ext == ".csv" {
		var pr *io.PipeReader
		pr, pw = io.Pipe()
		body = io.TeeReader(r, pw)
		inspected = make(chan csvInspection, 1)
		go func() {
			rows, columns, err := inspectCSV(ctx, pr)
			inspected <- csvInspection{rows: rows, columns: columns, err: err}
		}()
	}

	summary, err := u.backend.Upload(ctx, filename, body)

	var insp csvInspection
	if pw != nil {
		_ = pw.Close()
		insp = <-inspected
	}

	endedAt := u.clock.Now().Unix()
	if metaErr := u.store.UpdateMeta(ctx, uploadID, func(meta *entity.UploadMeta) {
		meta.EndedAt = endedAt
		meta.Rows = insp.rows
		meta.Columns = insp.columns
		if err != nil {
			meta.Status = entity.UploadStatusFailed
			meta.Err = err.Error()
			return
		}
		meta.Status = entity.UploadStatusDone
		meta.Summary = &summary
	}); metaErr != nil {
		slog.WarnContext(ctx, "failed to update upload meta", "upload_id", uploadID, "error", metaErr)
	}

	if err != nil {
		slog.ErrorContext(ctx, "upload failed", "upload_id", uploadID, "filename", filename, "error", err)
		return UploadResult{}, normalizeErr(err)
	}

	if insp.err != nil {
		slog.WarnContext(ctx, "csv inspection incomplete", "upload_id", uploadID, "error", insp.err)
	}

	generation := u.trigger.Bump()
	slog.InfoContext(ctx, "upload processed",
		"upload_id", uploadID,
		"filename", filename,
		"total", summary.TotalTransactions,
		"fraudulent", summary.FraudulentTransactions,
		"refresh_generation", generation,
	)

	return UploadResult{
		UploadID:  uploadID,
		Filename:  filename,
		Summary:   summary,
		FraudRate: summary.FraudRate(),
		Rows:      insp.rows,
		Columns:   insp.columns,
	}, nil
}

func (u *Usecase) GetUpload(ctx context.Context, uploadID string) (entity.UploadMeta, error) {
	if strings.TrimSpace(uploadID) == "" {
		return entity.UploadMeta{}, pkgerror.NewInvalidInput(errors.New("upload_id is required"))
	}

	meta, err := u.store.GetUpload(ctx, uploadID)
	if err != nil {
		return entity.UploadMeta{}, mapStoreErr(err, "upload")
	}
	return meta, nil
}

func (u *Usecase) ListUploads(ctx context.Context) ([]entity.UploadMeta, error) {
	items, err := u.store.ListUploads(ctx)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return items, nil
}

// ClearData asks the backend to drop every stored result and bumps the trigger.
func (u *Usecase) ClearData(ctx context.Context) (ClearResult, error) {
	resp, err := u.backend.ClearData(ctx)
	if err != nil {
		return ClearResult{}, normalizeErr(err)
	}

	generation := u.trigger.Bump()
	slog.InfoContext(ctx, "backend data cleared", "refresh_generation", generation)

	return ClearResult{Message: resp.Message, Generation: generation}, nil
}

// RefreshAll bumps the shared trigger so every trigger-driven view refetches.
func (u *Usecase) RefreshAll(ctx context.Context) RefreshResult {
	generation := u.trigger.Bump()
	slog.InfoContext(ctx, "manual refresh requested", "refresh_generation", generation)
	return RefreshResult{Generation: generation}
}
