package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resto_dashboard/internal/adapters/csvfile"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered reviews as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindLocal(cmd, v); err != nil {
				return err
			}
			c, err := criteriaFrom(v)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, v)
			if err != nil {
				return err
			}
			rows := app.WithLength(app.Filter(ds.Records, c))

			if out == "-" {
				return csvfile.Write(cmd.OutOrStdout(), ds.Header, rows)
			}
			if err := writeExport(out, ds.Header, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d reviews to %s\n", len(rows), out)
			return nil
		},
	}
	addCriteriaFlags(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", csvfile.ExportFileName, "output file, - for stdout")
	return cmd
}

var createOutput = func(name string) (io.WriteCloser, error) { return os.Create(name) }

// writeExport writes the CSV to path; a failed Close is a failed export.
func writeExport(path string, header []string, rows []domain.ReviewRow) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := csvfile.Write(f, header, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
