package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/manifest"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

var manifestJSON bool

var manifestCmd = &cobra.Command{
	Use:   "manifest [dir]",
	Short: "Show the manifest of a previous render run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := settings().OutputDir
		if len(args) == 1 {
			dir = args[0]
		}
		m, found, err := manifest.Find(dir)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if manifestJSON {
			b, err := utils.PrettyJSON(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		fmt.Fprintf(w, "Run:        %s\n", m.ID)
		fmt.Fprintf(w, "Created:    %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Directory:  %s\n", found)
		fmt.Fprintf(w, "Source:     %s (%d rows)\n", m.Source, m.Rows)
		fmt.Fprintf(w, "Age scheme: %s\n", m.AgeScheme)
		if m.Dashboard != "" {
			fmt.Fprintf(w, "Dashboard:  %s\n", m.Dashboard)
		}
		for _, e := range m.Charts {
			fmt.Fprintf(w, "- %s: %s [%s] included %d, excluded %d\n", e.ID, e.File, e.Kind, e.Included, e.Excluded)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().BoolVar(&manifestJSON, "json", false, "print the raw manifest")
}
