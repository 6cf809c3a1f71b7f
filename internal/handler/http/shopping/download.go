// Package shopping serves the shopping list download.
package shopping

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/auth"
	"foodgram/internal/handler/http/respond"
	"foodgram/internal/observability/logging"
	shoppingUC "foodgram/internal/usecase/shopping"
)

// ReportBuilder aggregates the cart of a user.
type ReportBuilder interface {
	BuildReport(ctx context.Context, userID int64) ([]entity.AggregatedLine, error)
}

// DownloadHandler streams the aggregated shopping list as a text file.
type DownloadHandler struct {
	Builder  ReportBuilder
	Renderer shoppingUC.Renderer
	Logger   *slog.Logger
}

// Register mounts the download route. The caller applies Authenticate.
func Register(mux *http.ServeMux, h *DownloadHandler) {
	mux.Handle("GET /api/recipes/download_shopping_cart/{$}", auth.RequireUser(h))
}

// ServeHTTP 買い物リストのダウンロード
// @Summary      買い物リストのダウンロード
// @Description  買い物リスト内の全レシピの材料を名前と単位ごとに合算したテキストを返します
// @Tags         recipes
// @Security     TokenAuth
// @Produce      plain
// @Success      200 {string} string "shopping_list.txt"
// @Failure      401 {object} map[string]string "Authentication credentials were not provided"
// @Failure      503 {object} map[string]string "Storage unavailable"
// @Router       /recipes/download_shopping_cart/ [get]
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(ctx, logger)

	userID := auth.UserID(ctx)
	lines, err := h.Builder.BuildReport(ctx, userID)
	if err != nil {
		logger.Error("build shopping list failed",
			slog.Int64("user_id", userID),
			slog.Any("error", err))
		if errors.Is(err, shoppingUC.ErrStorageUnavailable) {
			respond.SafeError(w, http.StatusServiceUnavailable, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// 全行を先に組み立ててから送る (途中失敗で中途半端なファイルを返さない)
	body := h.Renderer.RenderBytes(lines)
	w.Header().Set("Content-Type", shoppingUC.ContentType)
	w.Header().Set("Content-Disposition", shoppingUC.ContentDisposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Warn("write shopping list failed", slog.Any("error", err))
		return
	}
	logger.Info("shopping list downloaded",
		slog.Int64("user_id", userID),
		slog.Int("lines", len(lines)))
}
