package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/bot"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/candidates"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
)

var (
	errNoURL = errors.New("one of --url or --url-file is required")
	errNoJD  = errors.New("--jd is required")
)

func newRunCmd(open opener) *cobra.Command {
	var url, urlFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the growth report, ICP and search query workflow for a website",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := resolveURL(url, urlFile)
			if err != nil {
				return err
			}

			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := a.context()
			history := a.history()

			var run *runs.Run
			if history != nil {
				if run, err = history.Start(ctx, runs.KindWebsite, target); err != nil {
					a.logger.Warn("record run failed", "error", err)
				}
			}

			result, err := a.workflow(a.prompts())(ctx, workflow.Seed{WebsiteURL: target})
			if err != nil {
				if run != nil {
					history.Fail(ctx, run.ID, err)
				}
				return err
			}
			if run != nil {
				history.Complete(ctx, run.ID, result.Summary.CompanyName, result.Summary)
			}

			fmt.Fprintln(cmd.OutOrStdout(), bot.FormatSummary(result.Summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "website URL to process")
	cmd.Flags().StringVar(&urlFile, "url-file", "", "file whose first non-blank line is the website URL")
	cmd.MarkFlagsMutuallyExclusive("url", "url-file")
	return cmd
}

func newRecruitCmd(open opener) *cobra.Command {
	var jd string

	cmd := &cobra.Command{
		Use:   "recruit",
		Short: "Source and score LinkedIn candidates for a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(jd) == "" {
				return errNoJD
			}

			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			pipeline, err := a.recruiting()
			if err != nil {
				return err
			}

			result, err := pipeline.Run(a.context(), jd)
			if err != nil {
				return err
			}

			printRecruitment(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&jd, "jd", "", "job description text")
	return cmd
}

// resolveURL returns the normalized website URL from the flag, or from the
// first non-blank line of the file.
func resolveURL(url, urlFile string) (string, error) {
	if urlFile != "" {
		url = workflow.ReadURLFile(urlFile)
	}

	target := workflow.NormalizeURL(url)
	if target == "" {
		return "", errNoURL
	}
	return target, nil
}

func printRecruitment(w io.Writer, r *candidates.Result) {
	fmt.Fprintf(w, "Search strings: %d\n", len(r.Queries))
	for _, q := range r.Queries {
		fmt.Fprintf(w, "  • %s\n", q)
	}
	fmt.Fprintf(w, "Candidates: %d\n", len(r.GraphState.Scored))
	for _, c := range r.GraphState.Scored {
		fmt.Fprintf(w, "  %5.1f  %s  %s\n", c.FitScore, c.Name, c.Link)
	}
	fmt.Fprintf(w, "🔥 Hot: %d | 🌤 Warm: %d | ❄️ Cold: %d\n", r.Summary.Hot, r.Summary.Warm, r.Summary.Cold)
}
