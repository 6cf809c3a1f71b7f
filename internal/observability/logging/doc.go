// Package logging builds the process logger and carries it through context.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.WithRequestID(r.Context(), slog.Default()).Info("shopping list built")
//	}
package logging
