package bot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/leads"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

// Sender delivers a text message to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// WorkflowLauncher runs the lead workflow on the lifecycle coordinator so
// shutdown waits for runs in flight.
type WorkflowLauncher struct {
	lc      *lifecycle.Coordinator
	run     leads.Runner
	history runs.System
	sender  Sender
	logger  *slog.Logger
}

// NewLauncher creates a WorkflowLauncher. history may be nil.
func NewLauncher(lc *lifecycle.Coordinator, run leads.Runner, history runs.System, sender Sender, logger *slog.Logger) *WorkflowLauncher {
	return &WorkflowLauncher{
		lc:      lc,
		run:     run,
		history: history,
		sender:  sender,
		logger:  logger.With("system", "bot-launcher"),
	}
}

func (l *WorkflowLauncher) Launch(userID int64, websiteURL string) {
	l.lc.Go(func(ctx context.Context) {
		text := l.execute(ctx, websiteURL)
		if err := l.sender.Send(ctx, userID, text); err != nil {
			l.logger.ErrorContext(ctx, "send run outcome failed", "user", userID, "error", err)
		}
	})
}

func (l *WorkflowLauncher) execute(ctx context.Context, websiteURL string) string {
	var run *runs.Run
	if l.history != nil {
		r, err := l.history.Start(ctx, runs.KindWebsite, websiteURL)
		if err != nil {
			l.logger.WarnContext(ctx, "record run failed", "error", err)
		} else {
			run = r
		}
	}

	result, err := l.run(ctx, workflow.Seed{WebsiteURL: websiteURL})
	if err != nil {
		l.logger.ErrorContext(ctx, "run failed", "url", websiteURL, "error", err)
		if run != nil {
			if _, ferr := l.history.Fail(ctx, run.ID, err); ferr != nil {
				l.logger.WarnContext(ctx, "fail run failed", "run", run.ID, "error", ferr)
			}
		}
		return "⚠️ Error running PrimeLeads: " + err.Error()
	}

	if run != nil {
		if _, err := l.history.Complete(ctx, run.ID, result.Summary.CompanyName, result.Summary); err != nil {
			l.logger.WarnContext(ctx, "complete run failed", "run", run.ID, "error", err)
		}
	}
	return FormatSummary(result.Summary)
}

// FormatSummary renders a workflow summary as a chat message.
func FormatSummary(s workflow.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ PrimeLeads finished for %s\n", s.CompanyName)
	fmt.Fprintf(&b, "ICPs: %d | Personas: %d | Search queries: %d", s.TotalICPs, s.TotalPersonas, s.TotalQueries)

	var files []string
	for _, p := range []string{s.PDFReportPath, s.GrowthReportPath, s.SearchQueriesPath} {
		if p != "" {
			files = append(files, "• "+filepath.Base(p))
		}
	}
	if len(files) > 0 {
		b.WriteString("\nReports:\n")
		b.WriteString(strings.Join(files, "\n"))
	}
	return b.String()
}
