package feedback

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var lineEscaper = strings.NewReplacer(`\`, `\\`, "\r", `\r`, "\n", `\n`)

// FileRepo appends one "Rating: N, Comments: text" line per record.
// Appends from one process are serialized; separate processes may interleave.
type FileRepo struct {
	Path string
	mu   sync.Mutex
}

// NewFileRepo constructs a FileRepo writing to path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{Path: path}
}

// Append writes rec as a single line. Line breaks in comments are escaped.
func (r *FileRepo) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line := FormatLine(rec)

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("feedback log dir: %w", err)
		}
	}
	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write feedback log: %w", err)
	}
	return f.Close()
}

// FormatLine renders rec in the feedback log format, newline included.
func FormatLine(rec Record) string {
	return fmt.Sprintf("Rating: %d, Comments: %s\n", rec.Rating, lineEscaper.Replace(rec.Comments))
}
