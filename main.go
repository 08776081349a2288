package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotationdesk/collections"
	"quotationdesk/config"
	"quotationdesk/handlers"
	"quotationdesk/services"
)

func main() {
	cfg := config.Load()
	app := pocketbase.New()

	var desk *services.Dashboard

	// Create collections, seed demo accounts and start the dashboard
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}

		desk = services.NewDashboard(services.DashboardConfig{
			API:    services.NewClient(cfg.APIBaseURL, cfg.APITimeout),
			Logger: app.Logger(),
		})
		desk.Mount()
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.SessionMiddleware(app, cfg.Branding.CompanyName))

		// ── Session ──────────────────────────────────────────────
		se.Router.POST("/session", handlers.HandleLogin(app))
		se.Router.POST("/session/logout", handlers.HandleLogout())

		// ── Quotation list ───────────────────────────────────────
		se.Router.GET("/quotations", handlers.HandleQuotationList(desk))
		se.Router.POST("/quotations/refresh", handlers.HandleQuotationRefresh(desk))
		se.Router.GET("/quotations/export/excel", handlers.HandleQuotationExportExcel(desk))
		se.Router.GET("/quotations/export/pdf", handlers.HandleQuotationExportPDF(desk))

		// ── Single quotation (after the /quotations/export/* routes) ──
		se.Router.GET("/quotations/{id}/edit", handlers.HandleQuotationEdit(desk))
		se.Router.POST("/quotations/{id}/save", handlers.HandleQuotationSave(desk))
		se.Router.GET("/quotations/{id}/export/pdf", handlers.HandleQuotationPDF(desk, cfg.Branding))
		se.Router.GET("/quotations/{id}/email", handlers.HandleQuotationEmail(desk, cfg.Branding))
		se.Router.GET("/quotations/{id}", handlers.HandleQuotationView(desk))

		// Redirect home to the quotation list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotations")
		})

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if desk != nil {
			desk.Unmount()
		}
		return e.Next()
	})

	app.RootCmd.AddCommand(exportPDFCommand(cfg), emailDraftCommand(cfg))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// findForCLI loads the quotation list once and returns the one with id.
func findForCLI(ctx context.Context, cfg *config.Config, id string) (services.Quotation, error) {
	desk := services.NewDashboard(services.DashboardConfig{
		API:    services.NewClient(cfg.APIBaseURL, cfg.APITimeout),
		Logger: services.NewStructuredLogger(os.Stderr, services.ParseLogLevel(cfg.LogLevel)),
	})
	defer desk.Unmount()

	if _, err := desk.Quotations(ctx); err != nil {
		return services.Quotation{}, fmt.Errorf("load quotations: %w", err)
	}
	return desk.Find(ctx, id)
}

func exportPDFCommand(cfg *config.Config) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export-pdf <id>",
		Short: "Write a quotation PDF to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.APITimeout)
			defer cancel()

			q, err := findForCLI(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			out, err := services.GenerateQuotationPDF(services.BuildQuotationDocument(q), cfg.Branding)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, out.FileName)
			if err := os.WriteFile(path, out.Bytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", path, out.PageCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the PDF to")
	return cmd
}

func emailDraftCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "email-draft <id>",
		Short: "Print the email subject, mailto link and plain-text body of a quotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.APITimeout)
			defer cancel()

			q, err := findForCLI(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			draft, err := services.RenderQuotationEmail(ctx, services.BuildQuotationDocument(q), cfg.Branding)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Subject: %s\n", draft.Subject)
			fmt.Fprintf(w, "Mailto:  %s\n\n", draft.MailtoURI)
			fmt.Fprintln(w, draft.Text)
			return nil
		},
	}
}

