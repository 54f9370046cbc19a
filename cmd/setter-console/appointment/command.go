// Package appointmentcmd hosts the scheduling commands.
package appointmentcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/appointment"
	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/session"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Manage appointments",
	}

	cmd.AddCommand(
		createCmd(buildInfo),
		getCmd(buildInfo),
		listCmd(buildInfo),
		statusCmd(buildInfo),
		cancelCmd(buildInfo),
		rescheduleCmd(buildInfo),
		completeCmd(buildInfo),
		upcomingCmd(buildInfo),
		dateRangeCmd(buildInfo),
		slotsCmd(buildInfo),
		holdCmd(buildInfo),
		releaseCmd(buildInfo),
	)

	return cmd
}

func parseDatetime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing datetime %q (want RFC3339, e.g. 2026-09-01T14:00:00Z): %w", value, err)
	}
	return t, nil
}

func createCmd(buildInfo string) *cobra.Command {
	var (
		params   appointment.CreateParams
		datetime string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an appointment",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			when, err := parseDatetime(datetime)
			if err != nil {
				return err
			}
			params.AppointmentDatetime = when

			created, err := appointment.NewService(rt.Client).Create(ctx, params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(created)
		}),
	}

	cmd.Flags().StringVar(&params.TenantID, "tenant-id", "", "owning tenant")
	cmd.Flags().StringVar(&params.CustomerName, "customer-name", "", "customer name")
	cmd.Flags().StringVar(&params.CustomerPhone, "customer-phone", "", "customer phone")
	cmd.Flags().StringVar(&params.CustomerEmail, "customer-email", "", "customer email")
	cmd.Flags().StringVar(&params.ServiceType, "service-type", "", "service type")
	cmd.Flags().StringVar(&params.ServiceAddress, "service-address", "", "service address")
	cmd.Flags().StringVar(&datetime, "datetime", "", "appointment time, RFC3339")
	cmd.Flags().IntVar(&params.DurationMinutes, "duration", 60, "duration in minutes")
	cmd.Flags().StringVar(&params.Notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("customer-name")
	_ = cmd.MarkFlagRequired("customer-phone")
	_ = cmd.MarkFlagRequired("datetime")

	return cmd
}

func getCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <appointment-id>",
		Short: "Show an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := appointment.NewService(rt.Client).Get(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}
}

func listCmd(buildInfo string) *cobra.Command {
	var params appointment.ListParams

	cmd := &cobra.Command{
		Use:   "list <tenant-id>",
		Short: "List a tenant's appointments",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			appointments, err := appointment.NewService(rt.Client).ListByTenant(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(appointments)
		}),
	}

	cmd.Flags().StringVar(&params.Status, "status", "", "filter by status")
	cmd.Flags().IntVar(&params.Limit, "limit", 100, "page size")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "page offset")

	return cmd
}

func statusCmd(buildInfo string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "set-status <appointment-id> <status>",
		Short: "Set an appointment's status",
		Args:  cobra.ExactArgs(2),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := appointment.NewService(rt.Client).UpdateStatus(ctx, args[0], args[1], notes)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}

	cmd.Flags().StringVar(&notes, "notes", "", "status change notes")

	return cmd
}

func cancelCmd(buildInfo string) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := appointment.NewService(rt.Client).Cancel(ctx, args[0], reason)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")

	return cmd
}

func rescheduleCmd(buildInfo string) *cobra.Command {
	var (
		datetime string
		reason   string
	)

	cmd := &cobra.Command{
		Use:   "reschedule <appointment-id>",
		Short: "Move an appointment to a new time",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			when, err := parseDatetime(datetime)
			if err != nil {
				return err
			}

			a, err := appointment.NewService(rt.Client).Reschedule(ctx, args[0], when, reason)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}

	cmd.Flags().StringVar(&datetime, "datetime", "", "new appointment time, RFC3339")
	cmd.Flags().StringVar(&reason, "reason", "", "reschedule reason")
	_ = cmd.MarkFlagRequired("datetime")

	return cmd
}

func completeCmd(buildInfo string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "complete <appointment-id>",
		Short: "Mark an appointment completed",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := appointment.NewService(rt.Client).Complete(ctx, args[0], notes)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}

	cmd.Flags().StringVar(&notes, "notes", "", "completion notes")

	return cmd
}

func upcomingCmd(buildInfo string) *cobra.Command {
	var daysAhead int

	cmd := &cobra.Command{
		Use:   "upcoming <tenant-id>",
		Short: "List upcoming appointments",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			appointments, err := appointment.NewService(rt.Client).Upcoming(ctx, args[0], daysAhead)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(appointments)
		}),
	}

	cmd.Flags().IntVar(&daysAhead, "days", 7, "how many days ahead to include")

	return cmd
}

func dateRangeCmd(buildInfo string) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "date-range <tenant-id>",
		Short: "List appointments inside a date range",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			start, err := parseDatetime(startStr)
			if err != nil {
				return err
			}
			end, err := parseDatetime(endStr)
			if err != nil {
				return err
			}

			appointments, err := appointment.NewService(rt.Client).ByDateRange(ctx, args[0], start, end)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(appointments)
		}),
	}

	cmd.Flags().StringVar(&startStr, "start", "", "range start, RFC3339")
	cmd.Flags().StringVar(&endStr, "end", "", "range end, RFC3339")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func slotsCmd(buildInfo string) *cobra.Command {
	var (
		dateStr  string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "slots <tenant-id>",
		Short: "List available slots for a day",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			day, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing date %q (want YYYY-MM-DD): %w", dateStr, err)
			}

			slots, err := appointment.NewService(rt.Client).AvailableSlots(ctx, args[0], day, duration)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(slots)
		}),
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "target date, YYYY-MM-DD")
	cmd.Flags().IntVar(&duration, "duration", 60, "slot duration in minutes")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func holdCmd(buildInfo string) *cobra.Command {
	var (
		params   appointment.HoldParams
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "hold <tenant-id>",
		Short: "Place a temporary hold on a slot",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			start, err := parseDatetime(startStr)
			if err != nil {
				return err
			}
			end, err := parseDatetime(endStr)
			if err != nil {
				return err
			}
			params.SlotStart = start
			params.SlotEnd = end

			hold, err := appointment.NewService(rt.Client).HoldSlot(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(hold)
		}),
	}

	cmd.Flags().StringVar(&startStr, "start", "", "slot start, RFC3339")
	cmd.Flags().StringVar(&endStr, "end", "", "slot end, RFC3339")
	cmd.Flags().StringVar(&params.CustomerName, "customer-name", "", "customer name")
	cmd.Flags().StringVar(&params.CustomerPhone, "customer-phone", "", "customer phone")
	cmd.Flags().IntVar(&params.HoldDurationMinutes, "hold-duration", 0, "hold lifetime in minutes")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("customer-name")
	_ = cmd.MarkFlagRequired("customer-phone")

	return cmd
}

func releaseCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "release-hold <hold-id>",
		Short: "Release a slot hold",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			return appointment.NewService(rt.Client).ReleaseHold(ctx, args[0])
		}),
	}
}
