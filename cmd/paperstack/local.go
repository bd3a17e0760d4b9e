package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/paperstack/paperstack/internal/domain/document"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/imaging"
	"github.com/paperstack/paperstack/internal/pdf"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/paperstack/paperstack/internal/typst"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newLocalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Manage documents kept on this machine",
	}

	cmd.PersistentFlags().StringP("namespace", "n", string(types.LocalNamespaceInvoice), "Local namespace (home or invoice)")

	cmd.AddCommand(
		newLocalListCmd(a),
		newLocalSaveCmd(a),
		newLocalDeleteCmd(a),
		newLocalClearCmd(a),
		newLocalRenderCmd(a),
		newLocalDraftCmd(a),
	)
	return cmd
}

func namespaceFlag(cmd *cobra.Command) (types.LocalNamespace, error) {
	value, _ := cmd.Flags().GetString("namespace")
	ns := types.LocalNamespace(value)
	if err := ns.Validate(); err != nil {
		return "", err
	}
	return ns, nil
}

func newLocalListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List local documents, most recently changed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespaceFlag(cmd)
			if err != nil {
				return reportError(err)
			}

			docs, err := a.store.List(ns)
			if err != nil {
				return reportError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tNUMBER\tCLIENT\tTOTAL\tSYNCED")
			for _, doc := range docs {
				name, _ := document.SplitBillTo(doc.BillTo)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
					doc.ID, doc.Type, doc.InvoiceNumber, name, doc.Total.StringFixed(2), doc.Synced)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d documents, %d of %d bytes used\n", len(docs), a.store.Size(), a.cfg.Local.QuotaBytes)
			return nil
		},
	}
}

func newLocalSaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or replace a local document from JSON",
		Example: `  # Save a document read from a file, with a logo
  paperstack local save --file invoice.json --logo logo.png

  # Read the document from stdin
  cat quote.json | paperstack local save -n home --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespaceFlag(cmd)
			if err != nil {
				return reportError(err)
			}
			file, _ := cmd.Flags().GetString("file")
			logoPath, _ := cmd.Flags().GetString("logo")

			doc, err := readLocalDocument(cmd.InOrStdin(), file)
			if err != nil {
				return reportError(err)
			}

			var logo []byte
			if logoPath != "" {
				logo, err = os.ReadFile(logoPath)
				if err != nil {
					return reportError(ierr.WithError(err).
						WithHintf("Could not read logo %s", logoPath).
						Mark(ierr.ErrValidation))
				}
			}

			result, err := a.store.Upsert(ns, doc, logo)
			if err != nil {
				return reportError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s (total %s)\n", result.Document.ID, result.Document.Total.StringFixed(2))
			for _, id := range result.Evicted {
				fmt.Fprintf(out, "Removed old document %s to stay within the local limit\n", id)
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "-", "JSON document to save, - for stdin")
	cmd.Flags().String("logo", "", "Path to a logo image")
	return cmd
}

func readLocalDocument(stdin io.Reader, file string) (*document.LocalDocument, error) {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read the document").
			Mark(ierr.ErrValidation)
	}

	var doc document.LocalDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The document is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	if doc.Type == "" {
		doc.Type = types.DocumentTypeInvoice
	}
	if err := doc.Type.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func newLocalDraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show the unsaved form of a namespace, or replace it with --file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespaceFlag(cmd)
			if err != nil {
				return reportError(err)
			}

			if file, _ := cmd.Flags().GetString("file"); file != "" {
				draft, err := readLocalDocument(cmd.InOrStdin(), file)
				if err != nil {
					return reportError(err)
				}
				if err := a.store.SaveDraft(ns, draft); err != nil {
					return reportError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Draft saved")
				return nil
			}

			draft, err := a.store.LoadDraft(ns)
			if err != nil {
				return reportError(err)
			}
			if draft == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "No draft")
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(draft)
		},
	}

	cmd.Flags().StringP("file", "f", "", "JSON draft to store, - for stdin")
	return cmd
}

func newLocalDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a local document and its logo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespaceFlag(cmd)
			if err != nil {
				return reportError(err)
			}
			if err := a.store.Delete(ns, args[0]); err != nil {
				return reportError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newLocalClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every local document, draft and logo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.ClearAll(); err != nil {
				return reportError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local cache cleared")
			return nil
		},
	}
}

func newLocalRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a local document to pdf without an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespaceFlag(cmd)
			if err != nil {
				return reportError(err)
			}
			output, _ := cmd.Flags().GetString("output")

			local, err := a.store.Get(ns, args[0])
			if err != nil {
				return reportError(err)
			}
			doc := local.ToDocument()
			doc.ID = local.ID

			data := pdf.BuildDocumentData(doc, nil)
			logo, ok, err := a.store.LoadLogo(ns, local.ID)
			if err != nil {
				a.logger.Warnw("rendering without logo", "document_id", local.ID, "error", err)
			}
			if ok {
				data.LogoBase64 = imaging.EncodeDataURL(logo)
			}

			compiler, err := typst.NewCompilerFromConfig(a.cfg, a.logger)
			if err != nil {
				return reportError(err)
			}
			content, err := pdf.NewGenerator(a.cfg, compiler, a.logger).RenderDocumentPdf(cmd.Context(), data)
			if err != nil {
				return reportError(err)
			}

			output = lo.Ternary(output != "", output, doc.PDFFilename())
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return reportError(ierr.WithError(err).
					WithHintf("Could not write %s", output).
					Mark(ierr.ErrSystem))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file, defaults to {type}_{number}.pdf")
	return cmd
}
