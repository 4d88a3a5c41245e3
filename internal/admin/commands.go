package admin

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/services"
	"github.com/spf13/cobra"
)

func newMigrateCommand(env Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), env, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newRegisterCommand(env Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Create a user, prompting for the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), env, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			password, err := GetPassword(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer common.WipeByteArray(password)

			identity := services.NewIdentityService(s.db, s.rm, s.cfg, s.logger)
			u, err := identity.Register(cmd.Context(), args[0], string(password))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s id=%s\n", u.UserName, u.ID)
			return nil
		},
	}
}

func newSummaryCommand(env Env, opts *rootOptions) *cobra.Command {
	var q services.PeriodQuery

	cmd := &cobra.Command{
		Use:   "summary <username>",
		Short: "Print a user's category summary and spending series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), env, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			password, err := GetPassword(cmd.InOrStdin(), cmd.OutOrStdout(), "Enter password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer common.WipeByteArray(password)

			identity := services.NewIdentityService(s.db, s.rm, s.cfg, s.logger)
			p, err := identity.Authenticate(cmd.Context(), args[0], string(password))
			if err != nil {
				return err
			}

			summaries := services.NewSummaryService(s.db, s.rm, s.logger)
			detailed, err := summaries.Detailed(cmd.Context(), p, q)
			if err != nil {
				return err
			}
			overview, err := summaries.Overview(cmd.Context(), p)
			if err != nil {
				return err
			}

			return printSummary(cmd.OutOrStdout(), detailed, overview)
		},
	}

	cmd.Flags().IntVar(&q.Year, "year", 0, "year (default: current year)")
	cmd.Flags().IntVar(&q.Month, "month", 0, "month 1-12 (default: whole year)")
	return cmd
}

func printSummary(out io.Writer, d *services.DetailedSummary, o *aggregate.Overview) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Period %s .. %s\n", d.Period.Start, d.Period.End)
	fmt.Fprintln(w, "CATEGORY\tTOTAL")
	for _, c := range d.Categories {
		fmt.Fprintf(w, "%s\t%s\n", c.Category, c.Total.Display())
	}
	fmt.Fprintf(w, "Grand total\t%s\n", d.GrandTotal.Display())

	for _, section := range []struct {
		title   string
		buckets []aggregate.Bucket
	}{
		{"WEEK", o.Weekly},
		{"MONTH", o.Monthly},
		{"YEAR", o.Yearly},
	} {
		fmt.Fprintf(w, "\n%s\tTOTAL\n", section.title)
		for _, b := range section.buckets {
			fmt.Fprintf(w, "%s\t%s\n", b.Key, b.Total.Display())
		}
	}

	return w.Flush()
}
