package app

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/deusflow/thumbfill/internal/audit"
	"github.com/deusflow/thumbfill/internal/report"
	"github.com/deusflow/thumbfill/internal/thumbnail"
)

var rule = strings.Repeat("=", 60)

// WriteFixReport prints the per-file run report followed by the batch total.
func WriteFixReport(w io.Writer, results []FileResult, sum thumbnail.Summary) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Daily report thumbnail check")
	fmt.Fprintln(w, rule)

	for _, fr := range results {
		if fr.Err != nil {
			fmt.Fprintf(w, "\n[error] %s: %v\n", fr.Path, fr.Err)
			continue
		}

		fmt.Fprintf(w, "\n%s\n", rule)
		fmt.Fprintf(w, "Processing: %s\n", filepath.Base(fr.Path))
		fmt.Fprintln(w, strings.Repeat("-", 60))

		fmt.Fprintf(w, "\n[summary]\n")
		for _, sec := range report.Sections {
			t := fr.Result.Tallies[sec]
			fmt.Fprintf(w, "  - %s: %d checked, %d fixed\n", sec, t.Checked, t.Fixed)
		}
		fmt.Fprintf(w, "  - empty string -> null: %d\n", fr.Result.EmptyToNull)
		fmt.Fprintf(w, "  - file saved: %s\n", yesNo(fr.Saved))

		if len(fr.Result.Decisions) > 0 {
			fmt.Fprintf(w, "\n[details]\n")
			for _, d := range fr.Result.Decisions {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Done: %d thumbnails fixed in total\n", sum.Fixed())
	fmt.Fprintln(w, rule)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type fileJSON struct {
	Path        string                             `json:"path"`
	Error       string                             `json:"error,omitempty"`
	Sections    map[report.Section]thumbnail.Tally `json:"sections,omitempty"`
	EmptyToNull int                                `json:"empty_to_null"`
	Saved       bool                               `json:"saved"`
	Decisions   []string                           `json:"decisions,omitempty"`
}

type fixJSON struct {
	Files   []fileJSON        `json:"files"`
	Summary thumbnail.Summary `json:"summary"`
	Metrics map[string]any    `json:"metrics,omitempty"`
}

// WriteFixJSON prints the batch as a single indented JSON object.
func WriteFixJSON(w io.Writer, results []FileResult, sum thumbnail.Summary, stats map[string]any) error {
	out := fixJSON{Files: make([]fileJSON, 0, len(results)), Summary: sum, Metrics: stats}
	for _, fr := range results {
		f := fileJSON{Path: fr.Path}
		if fr.Err != nil {
			f.Error = fr.Err.Error()
		} else {
			f.Sections = fr.Result.Tallies
			f.EmptyToNull = fr.Result.EmptyToNull
			f.Saved = fr.Saved
			for _, d := range fr.Result.Decisions {
				f.Decisions = append(f.Decisions, d.String())
			}
		}
		out.Files = append(out.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// WriteAuditReport prints findings grouped by status, skipping good ones,
// and a count line per file.
func WriteAuditReport(w io.Writer, audits []FileAudit) {
	for _, fa := range audits {
		fmt.Fprintf(w, "%s\n", fa.Path)
		if fa.Err != nil {
			fmt.Fprintf(w, "  [error] %v\n", fa.Err)
			continue
		}

		for _, st := range audit.Statuses {
			if st == audit.Good {
				continue
			}
			for _, f := range fa.Findings {
				if f.Status != st {
					continue
				}
				fmt.Fprintf(w, "  [%s] %s #%d: %s", st, f.Section, f.Index+1, thumbnail.Truncate(f.Title, 40))
				if f.NewsTitle != "" {
					fmt.Fprintf(w, " <- %s (%s, score %d)", thumbnail.Truncate(f.NewsTitle, 40), f.Source, f.Score)
				}
				fmt.Fprintln(w)
			}
		}

		counts := audit.Count(fa.Findings)
		parts := make([]string, 0, len(audit.Statuses))
		for _, st := range audit.Statuses {
			parts = append(parts, fmt.Sprintf("%s %d", st, counts[st]))
		}
		fmt.Fprintf(w, "  %d items: %s\n", len(fa.Findings), strings.Join(parts, ", "))
	}
}
