package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/orderparser/internal/application/service"
	"github.com/eshaffer321/orderparser/internal/domain/export"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
	"github.com/eshaffer321/orderparser/internal/extractor"
)

// OutputFlags control where an exported table goes.
type OutputFlags struct {
	Layout    string
	IDs       []string
	Clipboard bool
	XLSXPath  string
}

func (f *OutputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Layout, "layout", "l", "default", "Export layout: default, au or bham")
	cmd.Flags().StringSliceVar(&f.IDs, "ids", nil, "Row ids selected for the bham layout")
	cmd.Flags().BoolVar(&f.Clipboard, "clipboard", false, "Copy the TSV to the clipboard instead of printing it")
	cmd.Flags().StringVar(&f.XLSXPath, "xlsx", "", "Also write the table as an .xlsx workbook to this path")
}

// openService builds the order service for client-side commands.
func (f *GlobalFlags) openService(withExtractor bool) (*service.OrderService, func(), error) {
	cfg, logger := f.load("cli")

	store, err := NewClientStore(cfg, f.Local, logger.With("system", "storage"))
	if err != nil {
		return nil, nil, err
	}

	var ext *extractor.Extractor
	if withExtractor {
		ext, err = NewExtractor(cfg, logger.With("system", "extractor"))
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}
	svc := service.NewOrderService(ext, store, logger)
	return svc, func() { _ = store.Close() }, nil
}

func newParseCommand(global *GlobalFlags) *cobra.Command {
	out := &OutputFlags{}
	var file string
	cmd := &cobra.Command{
		Use:   "parse [--file orders.txt]",
		Short: "Extract orders from a file or stdin and save the run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			svc, closeFn, err := global.openService(true)
			if err != nil {
				return err
			}
			defer closeFn()

			item, err := svc.Process(cmd.Context(), text)
			if err != nil {
				return err
			}
			PrintRunSummary(cmd.ErrOrStderr(), item)
			return writeExport(cmd, svc, item.ID, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read order text from this file (default stdin)")
	out.register(cmd)
	return cmd
}

func newHistoryCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := global.openService(false)
			if err != nil {
				return err
			}
			defer closeFn()

			history, err := svc.ListHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			PrintHistory(cmd.OutOrStdout(), history)
			return nil
		},
	}
}

func newShowCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a run's rows and change log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := global.openService(false)
			if err != nil {
				return err
			}
			defer closeFn()

			item, err := svc.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			PrintRun(cmd.OutOrStdout(), item)
			return nil
		},
	}
}

func newEditCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <run-id> <row-id> <field> <value>",
		Short: "Change one field of one row and record it in the change log",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := global.openService(false)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.EditRun(cmd.Context(), args[0], orders.Edit{RowID: args[1], Field: args[2], Value: args[3]})
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), "No change.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %q -> %q\n",
				res.Entry.CustomerOrderNo, orders.FieldLabel(res.Entry.Field), res.Entry.OldValue, res.Entry.NewValue)
			return nil
		},
	}
}

func newExportCommand(global *GlobalFlags) *cobra.Command {
	out := &OutputFlags{}
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Print or copy a run in one of the fixed layouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := global.openService(false)
			if err != nil {
				return err
			}
			defer closeFn()

			return writeExport(cmd, svc, args[0], out)
		},
	}
	out.register(cmd)
	return cmd
}

func readInput(stdin io.Reader, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeExport(cmd *cobra.Command, svc *service.OrderService, id string, out *OutputFlags) error {
	layout, err := export.ParseLayout(out.Layout)
	if err != nil {
		return err
	}

	table, err := svc.Export(cmd.Context(), id, layout, out.IDs)
	if err != nil {
		return fmt.Errorf("export %s: %w", id, err)
	}

	if out.XLSXPath != "" {
		data, err := table.XLSX(layout)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.XLSXPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out.XLSXPath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(table.Rows), out.XLSXPath)
	}

	tsv := table.TSV()
	if out.Clipboard {
		if err := writeClipboard(tsv); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied %d rows (%s layout) to the clipboard\n", len(table.Rows), layout)
		return nil
	}

	_, err = io.WriteString(cmd.OutOrStdout(), strings.TrimRight(tsv, "\n")+"\n")
	return err
}
