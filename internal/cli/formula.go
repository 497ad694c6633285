package cli

import (
	"io"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/formula"
	"github.com/spf13/cobra"
)

func newPutSdistCmd() *cobra.Command {
	var url, sha256 string

	cmd := &cobra.Command{
		Use:   "put-sdist",
		Short: MsgPutSdistShort,
		Long:  MsgPutSdistLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rewriteFormula(cmd, func(f *formula.Formula) (*formula.Formula, error) {
				return f.PutSdist(url, sha256)
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", MsgFlagURL)
	cmd.Flags().StringVar(&sha256, "sha256", "", MsgFlagSHA256)
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("sha256")

	return cmd
}

func newPutBottleCmd() *cobra.Command {
	var osName, sha256 string

	cmd := &cobra.Command{
		Use:   "put-bottle",
		Short: MsgPutBottleShort,
		Long:  MsgPutBottleLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rewriteFormula(cmd, func(f *formula.Formula) (*formula.Formula, error) {
				return f.PutBottle(osName, sha256)
			})
		},
	}

	cmd.Flags().StringVar(&osName, "os", "", MsgFlagOS)
	cmd.Flags().StringVar(&sha256, "sha256", "", MsgFlagSHA256)
	_ = cmd.MarkFlagRequired("os")
	_ = cmd.MarkFlagRequired("sha256")

	return cmd
}

// rewriteFormula reads a formula from stdin, applies edit and writes the
// result to stdout.
func rewriteFormula(cmd *cobra.Command, edit func(*formula.Formula) (*formula.Formula, error)) error {
	in, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read formula from stdin")
	}

	f, err := formula.Parse(string(in))
	if err != nil {
		return err
	}
	updated, err := edit(f)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), updated.String()); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write formula")
	}
	return nil
}
