package cmd

import (
	"github.com/lithictech/go-assay/barcode"
	"github.com/spf13/cobra"
)

func (a *app) barcodeCommand() *cobra.Command {
	var symbology string
	var withChecksum, noChecksum, asJSON bool
	cmd := &cobra.Command{
		Use:   "barcode [VALUE...]",
		Short: "Check barcodes of one symbology",
		Long: `Check barcodes of one symbology.
Values come from the arguments, or one per line from stdin.
Exits non-zero if any value is invalid.`,
		Example: `  assay barcode -s ean13 4006381333931
  assay barcode -s code39 --checksum < codes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := barcode.Options{Symbology: symbology}
			switch {
			case withChecksum:
				opts.Checksum = barcode.ChecksumOn
			case noChecksum:
				opts.Checksum = barcode.ChecksumOff
			}
			v, err := barcode.New(opts)
			if err != nil {
				return err
			}
			values, err := readValues(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.runBatch(cmd, "barcode_batch", v, nil, values, asJSON)
		},
	}
	cmd.Flags().StringVarP(&symbology, "symbology", "s", barcode.DefaultSymbology, "symbology name, like ean13 or code39")
	cmd.Flags().BoolVar(&withChecksum, "checksum", false, "verify check characters")
	cmd.Flags().BoolVar(&noChecksum, "no-checksum", false, "do not verify check characters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON result per line")
	cmd.MarkFlagsMutuallyExclusive("checksum", "no-checksum")
	return cmd
}
