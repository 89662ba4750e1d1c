package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/talentlens/resume-parser/internal/resume/handler"
	"github.com/talentlens/resume-parser/internal/resume/render"
)

var taxonomyJSON bool

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "List the skill categories and abbreviations skills are matched against",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tax, err := loadTaxonomy(cfg.Extraction.TaxonomyFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if taxonomyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(handler.TaxonomyResponse{
				Categories:    tax.Categories(),
				Abbreviations: tax.Abbreviations(),
			})
		}

		r := render.NewRenderer(render.StylesFor(out), render.Width(out))
		_, err = out.Write([]byte(r.Taxonomy(tax)))
		return err
	},
}

func init() {
	taxonomyCmd.Flags().BoolVar(&taxonomyJSON, "json", false, "print the taxonomy as JSON")
	rootCmd.AddCommand(taxonomyCmd)
}
