package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"apnea/internal/modules/session/domain"
	sessionout "apnea/internal/modules/session/port/out"
	"apnea/internal/platform/duration"
	"apnea/internal/platform/fsutil"
	"apnea/internal/platform/markdown"
	"apnea/internal/platform/slug"
)

type journalMeta struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	Date            string `yaml:"date"`
	Focus           string `yaml:"focus"`
	Custom          bool   `yaml:"custom"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	TotalSeconds    int    `yaml:"total_seconds"`
	TotalPhases     int    `yaml:"total_phases"`
	CompletedPhases int    `yaml:"completed_phases"`
	MaxHoldUsed     int    `yaml:"max_hold_used"`
	MaxHoldTimes    []int  `yaml:"max_hold_times,flow"`
	EndedEarly      bool   `yaml:"ended_early"`
	PersonalBest    bool   `yaml:"personal_best"`
}

// MarkdownJournalStore writes one note per session under
// <dir>/YYYY/MM/DD/HHMMSS-<focus>.md.
type MarkdownJournalStore struct {
	dir string
}

func NewMarkdownJournalStore(dir string) sessionout.JournalStore {
	return &MarkdownJournalStore{dir: dir}
}

func (s *MarkdownJournalStore) Save(ctx context.Context, entry domain.JournalEntry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	started := entry.StartedAt
	path := filepath.Join(s.dir, started.Format("2006"), started.Format("01"), started.Format("02"),
		fmt.Sprintf("%s-%s.md", started.Format("150405"), slug.Make(entry.Focus)))

	meta := journalMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              entry.ID,
		Date:            entry.Date,
		Focus:           entry.Focus,
		Custom:          entry.Custom,
		StartedAt:       entry.StartedAt.Format(time.RFC3339),
		EndedAt:         entry.EndedAt.Format(time.RFC3339),
		TotalSeconds:    entry.TotalTime,
		TotalPhases:     entry.TotalPhases,
		CompletedPhases: entry.CompletedPhases,
		MaxHoldUsed:     entry.MaxHoldUsed,
		MaxHoldTimes:    entry.MaxHoldTimes,
		EndedEarly:      entry.EndedEarly,
		PersonalBest:    entry.PersonalBest,
	}
	rendered, err := markdown.RenderFrontmatter(meta, renderBody(entry))
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteFileAtomic(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func renderBody(entry domain.JournalEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Focus)
	fmt.Fprintf(&b, "- Duration: %s\n", duration.Format(entry.TotalTime))
	fmt.Fprintf(&b, "- Phases: %d/%d\n", entry.CompletedPhases, entry.TotalPhases)
	if entry.MaxHoldUsed > 0 {
		fmt.Fprintf(&b, "- Max hold used: %s\n", duration.Format(entry.MaxHoldUsed))
	}
	if entry.EndedEarly {
		b.WriteString("- Ended early\n")
	}
	if len(entry.MaxHoldTimes) > 0 {
		b.WriteString("\n## Max holds\n\n")
		for i, v := range entry.MaxHoldTimes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, duration.Format(v))
		}
	}
	b.WriteString("\n## Notes\n\n")
	if entry.Notes != "" {
		b.WriteString(entry.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// List returns every entry, newest first.
func (s *MarkdownJournalStore) List(ctx context.Context) ([]domain.JournalEntry, error) {
	out := []domain.JournalEntry{}
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		entry, err := readEntry(path)
		if err != nil {
			return err
		}
		out = append(out, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func readEntry(path string) (domain.JournalEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("read journal note: %w", err)
	}
	var meta journalMeta
	body, err := markdown.SplitFrontmatter(string(raw), &meta)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("%s: %w", path, err)
	}
	started, _ := time.Parse(time.RFC3339, meta.StartedAt)
	ended, _ := time.Parse(time.RFC3339, meta.EndedAt)
	notes := ""
	if _, after, ok := strings.Cut(body, "## Notes\n"); ok {
		notes = strings.TrimSpace(after)
	}
	return domain.JournalEntry{
		ID:              meta.ID,
		Date:            meta.Date,
		Focus:           meta.Focus,
		Custom:          meta.Custom,
		TotalTime:       meta.TotalSeconds,
		TotalPhases:     meta.TotalPhases,
		CompletedPhases: meta.CompletedPhases,
		MaxHoldUsed:     meta.MaxHoldUsed,
		MaxHoldTimes:    meta.MaxHoldTimes,
		EndedEarly:      meta.EndedEarly,
		PersonalBest:    meta.PersonalBest,
		StartedAt:       started,
		EndedAt:         ended,
		Notes:           notes,
		Path:            path,
	}, nil
}
