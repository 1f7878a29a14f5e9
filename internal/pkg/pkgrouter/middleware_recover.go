package pkgrouter

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
)

type panicResponse struct {
	Message string   `json:"message"`
	Actions []string `json:"actions"`
	Error   string   `json:"error,omitempty"`
	Stack   []string `json:"stack,omitempty"`
}

// middlewareRecoverer is the last-resort boundary for unexpected failures.
// Clients may reload, or reset the affected view's local state and try again.
//
//nolint:contextcheck // ignore error
func middlewareRecoverer(showDetails bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				//nolint:err113,errorlint // this must compare directly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				slog.ErrorContext(r.Context(), "panic on the server", "because", rvr)

				frames := internalFrames(strings.Split(string(debug.Stack()), "\n"))
				printStackTrace(frames)

				resp := panicResponse{
					Message: "Something went wrong",
					Actions: []string{"reload", "reset"},
				}
				if showDetails {
					resp.Error = fmt.Sprint(rvr)
					resp.Stack = frames
				}

				if r.Header.Get("Connection") == "Upgrade" {
					return
				}
				writeJSON(w, resp, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// internalFrames keeps only "internal/...go:line" locations from a stack dump.
func internalFrames(lines []string) []string {
	var frames []string
	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i+1])
		if !strings.Contains(line, "/internal/") || !strings.Contains(line, ".go") {
			continue
		}
		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}
		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}
		shortPath := line[:end]
		if internalIdx := strings.Index(shortPath, "/internal/"); internalIdx != -1 {
			frames = append(frames, shortPath[internalIdx+1:])
		}
	}
	return frames
}

func printStackTrace(frames []string) {
	fmt.Fprintln(os.Stderr, "===== ===== START ===== =====")
	for _, f := range frames {
		fmt.Fprintln(os.Stderr, "stack trace: ", f)
	}
	fmt.Fprintln(os.Stderr, "===== ===== END ===== =====")
}
