/*
Copyright © 2025 dperales2022
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// extractDocumentCmd represents the extract-document command
var extractDocumentCmd = &cobra.Command{
	Use:   "extract-document",
	Short: "Extract one document and print the JSON result",
	Long: `Runs the extraction pipeline once for a local file or URL and prints
the schema-conformant JSON object to stdout. Logs go to stderr.

  atmirasalesproposals extract-document -f ./proposal.pdf --variant propuesta_narrativa_es`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		variant, _ := cmd.Flags().GetString("variant")
		compact, _ := cmd.Flags().GetBool("compact")
		if filePath == "" {
			return fmt.Errorf("--file is required")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Fetch.AllowLocalFiles = true

		if path, local := utils.LocalPath(filePath); local {
			if abs, err := filepath.Abs(path); err == nil {
				filePath = abs
			}
		}

		ctx := utils.WithRequestID(cmd.Context(), uuid.New().String())
		p, err := newPipeline(ctx, cfg)
		if err != nil {
			return err
		}
		defer p.Close()

		result, err := p.service.Extract(ctx, types.ExtractRequest{
			PDFPath: filePath,
			DocName: utils.GetFileNameWithoutExt(filePath),
			Variant: variant,
		})
		if err != nil {
			return err
		}

		var out []byte
		if compact {
			out, err = json.Marshal(result.Fields)
		} else {
			out, err = json.MarshalIndent(result.Fields, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractDocumentCmd)

	extractDocumentCmd.Flags().StringP("file", "f", "", "Path or URL of the document to extract")
	extractDocumentCmd.Flags().StringP("variant", "v", "", "Schema variant ID (default from config)")
	extractDocumentCmd.Flags().Bool("compact", false, "Print compact JSON")
}
