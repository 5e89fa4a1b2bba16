package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/lithictech/go-assay/barcode"
	"github.com/spf13/cobra"
)

type symbologyRow struct {
	Name              string `json:"name"`
	Lengths           string `json:"lengths"`
	Checksum          string `json:"checksum,omitempty"`
	ChecksumByDefault bool   `json:"checksum_by_default"`
}

func (a *app) symbologiesCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "symbologies",
		Short: "List the supported barcode symbologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []symbologyRow
			for _, s := range barcode.Default().Symbologies() {
				row := symbologyRow{Name: s.Name, Lengths: s.Lengths.String(), ChecksumByDefault: s.ChecksumByDefault}
				if s.HasChecksum() {
					row.Checksum = s.Checksum.Name
				}
				rows = append(rows, row)
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLENGTHS\tCHECKSUM\tDEFAULT")
			for _, r := range rows {
				checksum, def := "-", "-"
				if r.Checksum != "" {
					checksum = r.Checksum
					def = "off"
					if r.ChecksumByDefault {
						def = "on"
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Lengths, checksum, def)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
