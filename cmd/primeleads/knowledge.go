package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/llm"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
)

var (
	errMismatch = errors.New("evaluation failed")
	errNoVision = errors.New("configured model client cannot read images")
)

func newIngestCmd(open opener) *cobra.Command {
	var (
		dir        string
		reset      bool
		transcribe bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load Markdown and PDF files into the knowledge base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireDB(); err != nil {
				return err
			}
			embedder, err := a.embedder()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.cfg.RAG.DataDir
			}

			ingestor := rag.NewIngestor(a.store(), embedder, a.cfg.RAG, a.logger)
			if transcribe || a.cfg.RAG.TranscribeScans {
				vision, ok := a.infra.LLM.(llm.VisionClient)
				if !ok {
					return errNoVision
				}
				ingestor.WithTranscriber(rag.NewVisionTranscriber(vision))
			}

			report, err := ingestor.Ingest(a.context(), dir, reset)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Loaded %d pages, %d chunks: %d added, %d already present\n",
				report.Loaded, report.Chunks, report.Added, report.Skipped,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "data", "", "knowledge-base directory (default rag.data_dir)")
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the knowledge base before loading")
	cmd.Flags().BoolVar(&transcribe, "transcribe", false, "read scanned PDF pages with the vision model (default rag.transcribe_scans)")
	return cmd
}

func newAskCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question from the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			chat, err := a.chat()
			if err != nil {
				return err
			}

			answer, err := chat.Answer(a.context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
			for _, src := range answer.Sources {
				fmt.Fprintf(cmd.OutOrStdout(), "  source: %s\n", src)
			}
			return nil
		},
	}
}

func newEvalCmd(open opener) *cobra.Command {
	var casesPath string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Judge chat answers against expected responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := rag.LoadCases(casesPath)
			if err != nil {
				return err
			}

			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			chat, err := a.chat()
			if err != nil {
				return err
			}

			verdicts, err := rag.NewEvaluator(chat, a.infra.LLM, a.prompts()).Evaluate(a.context(), cases)
			failed := printVerdicts(cmd, verdicts)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d cases did not match", errMismatch, failed, len(verdicts))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&casesPath, "cases", "", "YAML file of question and expected answer cases")
	cmd.MarkFlagRequired("cases")
	return cmd
}

func printVerdicts(cmd *cobra.Command, verdicts []rag.Verdict) int {
	var failed int
	for _, v := range verdicts {
		mark := "PASS"
		if !v.Pass {
			mark = "FAIL"
			failed++
		}
		name := v.Case.Name
		if name == "" {
			name = v.Case.Question
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", mark, name)
		if !v.Pass {
			fmt.Fprintf(cmd.OutOrStdout(), "      expected: %s\n      actual:   %s\n", v.Case.Expected, v.Actual)
		}
	}
	return failed
}
