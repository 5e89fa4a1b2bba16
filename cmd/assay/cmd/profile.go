package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) profileCommand() *cobra.Command {
	var file string
	var list, asJSON bool
	var vctx map[string]string
	cmd := &cobra.Command{
		Use:   "profile NAME [VALUE...]",
		Short: "Check values with a profile from a profile file",
		Long: `Check values with a named validator chain from a YAML or TOML profile file.
Values come from the arguments, or one per line from stdin.
Exits non-zero if any value is invalid.`,
		Example: `  assay profile -f profiles.yaml retail_sku 4006381333931
  assay profile -f profiles.toml --list`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if file == "" {
				file = a.cfg.Profiles
			}
			if file == "" {
				return errors.New("a profile file is required, with --file or ASSAY_PROFILES")
			}
			reg, closer, err := a.validators()
			if err != nil {
				return err
			}
			defer func() { err = closeAll(err, closer) }()
			set, err := profile.Load(file, reg)
			if err != nil {
				return err
			}
			if list {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, p := range set.Profiles() {
					fmt.Fprintf(w, "%s\t%d validators\t%s\n", p.Name, len(p.Specs), p.Description)
				}
				return w.Flush()
			}
			if len(args) == 0 {
				return errors.New("a profile name is required")
			}
			p, err := set.Get(args[0])
			if err != nil {
				return err
			}
			values, err := readValues(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}
			c := make(check.Context, len(vctx))
			for k, v := range vctx {
				c[k] = v
			}
			return a.runBatch(cmd, "profile_batch", p, c, values, asJSON)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file (default ASSAY_PROFILES)")
	cmd.Flags().BoolVar(&list, "list", false, "list the profiles in the file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON result per line")
	cmd.Flags().StringToStringVarP(&vctx, "context", "c", nil, "context fields for conditional validators, like sku=x")
	return cmd
}
