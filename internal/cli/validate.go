package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rag-assessment/internal/infra/filesystem"
)

// NewValidateCmd checks a definition document against the schema and shape rules.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a definition document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := filesystem.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d questions)\n",
				def.ID, len(def.Sections), def.QuestionCount())
			return nil
		},
	}
}
