package admin

import (
	"fmt"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/filex"
	"github.com/dmitrijs2005/budgettracker/internal/netx"
	"github.com/dmitrijs2005/budgettracker/internal/server/services"
	"github.com/spf13/cobra"
)

func newExportCommand(env Env, opts *rootOptions) *cobra.Command {
	var (
		q       services.PeriodQuery
		saveDir string
	)

	cmd := &cobra.Command{
		Use:   "export <username>",
		Short: "Upload a period's transactions as CSV and print the download link",
		Long: "Export writes the selected period to the configured S3 bucket and prints a\n" +
			"presigned URL. With --save the file is also downloaded into that directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, env, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			store, err := env.ObjectStore(ctx, s.cfg)
			if err != nil {
				return fmt.Errorf("object store: %w", err)
			}

			password, err := GetPassword(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer common.WipeByteArray(password)

			identity := services.NewIdentityService(s.db, s.rm, s.cfg, s.logger)
			p, err := identity.Authenticate(ctx, args[0], string(password))
			if err != nil {
				return err
			}

			summaries := services.NewSummaryService(s.db, s.rm, s.logger)
			exports := services.NewExportService(summaries, store, s.cfg.ExportURLValidityDuration, s.logger)

			res, err := exports.Export(ctx, p, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "exported %d rows to %s\n", res.Rows, res.Key)
			fmt.Fprintf(out, "url (valid until %s): %s\n", res.ExpiresAt.Format("2006-01-02 15:04:05 MST"), res.URL)

			if saveDir == "" {
				return nil
			}

			body, err := netx.DownloadPresignedURL(ctx, env.HTTPClient, res.URL)
			if err != nil {
				return fmt.Errorf("download export: %w", err)
			}
			path, err := filex.WriteInSubDir(saveDir, res.Key, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&q.Year, "year", 0, "year (default: current year)")
	cmd.Flags().IntVar(&q.Month, "month", 0, "month 1-12 (default: whole year)")
	cmd.Flags().StringVar(&saveDir, "save", "", "download the CSV into this directory under the working directory")
	return cmd
}
