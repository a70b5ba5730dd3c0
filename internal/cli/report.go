package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rag-assessment/internal/app"
	"rag-assessment/internal/config"
	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/infra/filesystem"
	"rag-assessment/internal/report"
)

// selection is one line of an answers file.
type selection struct {
	QuestionID int           `json:"questionId"`
	Option     domain.Rating `json:"option"`
}

// NewReportCmd renders a report offline from a definition and an answers file.
func NewReportCmd(configPath *string) *cobra.Command {
	var (
		definitionPath string
		answersPath    string
		formatName     string
		outPath        string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a results report from an answers file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			def, err := loadReportDefinition(definitionPath)
			if err != nil {
				return err
			}
			selections, err := readSelections(answersPath)
			if err != nil {
				return err
			}
			answers, err := resolveSelections(def, selections)
			if err != nil {
				return err
			}

			session := app.NewSession("cli", def)
			for _, a := range answers {
				session.Record(a)
			}
			results, err := session.Results()
			if err != nil {
				return err
			}

			svc := report.NewService(report.Options{FontPath: cfg.Report.Font}, log)
			doc, err := svc.Render(cmd.Context(), format, results, def.BrandColors)
			if err != nil {
				return &domain.ReportGenerationError{Format: string(format), Err: err}
			}

			switch outPath {
			case "-":
				_, err = cmd.OutOrStdout().Write(doc.Body)
				return err
			case "":
				outPath = doc.Filename
			}
			if err := os.WriteFile(outPath, doc.Body, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d/%d)\n", outPath, results.OverallScore, results.OverallMaxScore)
			return nil
		},
	}
	cmd.Flags().StringVar(&definitionPath, "definition", "", "definition document (defaults to the built-in assessment)")
	cmd.Flags().StringVar(&answersPath, "answers", "", `answers file: JSON list of {"questionId", "option"}`)
	cmd.Flags().StringVar(&formatName, "format", "pdf", "pdf, text or png")
	cmd.Flags().StringVar(&outPath, "out", "", `output path; "-" writes to stdout`)
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func loadReportDefinition(path string) (domain.Definition, error) {
	if path != "" {
		return filesystem.ReadFile(path)
	}
	defs, err := definition.Builtin()
	if err != nil {
		return domain.Definition{}, err
	}
	def, ok := defs[definition.DefaultID]
	if !ok {
		return domain.Definition{}, domain.ErrDefinitionNotFound
	}
	return def, nil
}

func readSelections(path string) ([]selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var out []selection
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return out, nil
}

// resolveSelections snapshots each selected option from def, in file order.
func resolveSelections(def domain.Definition, selections []selection) ([]domain.UserAnswer, error) {
	type located struct {
		sectionID int
		question  domain.Question
	}
	index := make(map[int]located, def.QuestionCount())
	for _, s := range def.Sections {
		for _, q := range s.Questions {
			index[q.ID] = located{sectionID: s.ID, question: q}
		}
	}

	answers := make([]domain.UserAnswer, 0, len(selections))
	for _, sel := range selections {
		loc, ok := index[sel.QuestionID]
		if !ok {
			return nil, fmt.Errorf("answers: unknown question %d", sel.QuestionID)
		}
		opt, ok := loc.question.Option(sel.Option)
		if !ok {
			return nil, fmt.Errorf("answers: question %d: %w", sel.QuestionID, domain.ErrOptionNotFound)
		}
		answers = append(answers, domain.UserAnswer{
			QuestionID:     sel.QuestionID,
			SectionID:      loc.sectionID,
			SelectedOption: opt.Rating,
			Score:          opt.Score,
			Tip:            opt.Tip,
		})
	}
	return answers, nil
}

