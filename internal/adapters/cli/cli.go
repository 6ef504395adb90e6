// Package cli is the erpctl command tree. Every command goes through
// app.ApplicationService; none touches a store directly.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"erp-admin/internal/app"
	"erp-admin/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Opener connects to the configured stores. The returned func releases them.
type Opener func(ctx context.Context) (app.ApplicationService, func(), error)

type runner struct {
	open   Opener
	out    io.Writer
	asJSON bool
}

// NewRootCmd builds the erpctl command tree. open is called lazily so that
// commands which need no database (modules schema) run without one.
func NewRootCmd(open Opener, out io.Writer) *cobra.Command {
	r := &runner{open: open, out: out}

	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Operate the ERP admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVar(&r.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(r.menuCmd(), r.modulesCmd(), r.companiesCmd(), r.userCmd())
	return root
}

// withService opens the service for the duration of fn.
func (r *runner) withService(cmd *cobra.Command, fn func(ctx context.Context, svc app.ApplicationService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := r.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, svc)
}

func (r *runner) printJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *runner) newTable(header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row(header))
	return t
}

// ── menu ──────────────────────────────────────────────────────────────────────

func (r *runner) menuCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "menu", Short: "Inspect and change hidden navigation entries"}

	show := &cobra.Command{
		Use:   "show",
		Short: "List hideable entries and whether they are hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				res, err := svc.HiddenMenus(ctx)
				if err != nil {
					return err
				}
				return r.printHidden(res)
			})
		},
	}

	var mainSlugs, toolbarIDs []string
	hide := &cobra.Command{
		Use:   "hide",
		Short: "Overwrite the hidden main menu and/or toolbar lists",
		Long: `Overwrite the hidden lists. Only the lists named by a flag change;
pass an empty value (--main "") to clear a list.`,
		Example: `  erpctl menu hide --main media,comments --toolbar updates`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req app.SetHiddenMenusRequest
			if cmd.Flags().Changed("main") {
				req.Main = &mainSlugs
			}
			if cmd.Flags().Changed("toolbar") {
				req.Toolbar = &toolbarIDs
			}
			if req.Main == nil && req.Toolbar == nil {
				return errors.New("nothing to change: pass --main and/or --toolbar")
			}
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				res, err := svc.SetHiddenMenus(ctx, req)
				if err != nil {
					return err
				}
				return r.printHidden(res)
			})
		},
	}
	hide.Flags().StringSliceVar(&mainSlugs, "main", nil, "main menu slugs to hide")
	hide.Flags().StringSliceVar(&toolbarIDs, "toolbar", nil, "toolbar node ids to hide")

	cmd.AddCommand(show, hide)
	return cmd
}

func (r *runner) printHidden(res *app.HiddenMenusResult) error {
	if r.asJSON {
		return r.printJSON(struct {
			Main    []string `json:"main"`
			Toolbar []string `json:"toolbar"`
		}{nonNil(res.Main), nonNil(res.Toolbar)})
	}

	t := r.newTable("LIST", "ID", "TITLE", "HIDDEN")
	for _, e := range res.HideableMain {
		t.AppendRow(table.Row{"main", e.Slug, e.Title, mark(res.IsMainHidden(e.Slug))})
	}
	t.AppendSeparator()
	for _, n := range res.HideableToolbar {
		t.AppendRow(table.Row{"toolbar", n.ID, n.Title, mark(res.IsToolbarHidden(n.ID))})
	}
	t.Render()

	// Stored entries with no matching built-in still apply; show them.
	for _, slug := range res.Main {
		if !hideableMain(res, slug) {
			fmt.Fprintf(r.out, "main: %s (not a built-in entry)\n", slug)
		}
	}
	for _, id := range res.Toolbar {
		if !hideableToolbar(res, id) {
			fmt.Fprintf(r.out, "toolbar: %s (not a built-in entry)\n", id)
		}
	}
	return nil
}

func hideableMain(res *app.HiddenMenusResult, slug string) bool {
	for _, e := range res.HideableMain {
		if e.Slug == slug {
			return true
		}
	}
	return false
}

func hideableToolbar(res *app.HiddenMenusResult, id string) bool {
	for _, n := range res.HideableToolbar {
		if n.ID == id {
			return true
		}
	}
	return false
}

// ── modules ───────────────────────────────────────────────────────────────────

func (r *runner) modulesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "modules", Short: "Module registry"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List switchable modules and add-ons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				res, err := svc.ListModules(ctx)
				if err != nil {
					return err
				}
				if r.asJSON {
					return r.printJSON(res)
				}
				t := r.newTable("KEY", "TITLE", "REDIRECT", "DEFAULT")
				for _, m := range res.Modules {
					t.AppendRow(table.Row{m.Key, m.Title, m.Redirect, mark(m.Key == res.Default.Key)})
				}
				t.Render()
				if len(res.Addons) > 0 {
					fmt.Fprintf(r.out, "%d add-on(s):", len(res.Addons))
					for _, a := range res.Addons {
						fmt.Fprintf(r.out, " %s", a.Name)
					}
					fmt.Fprintln(r.out)
				}
				return nil
			})
		},
	}

	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the module registry file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.printJSON(RegistrySchema())
		},
	}

	cmd.AddCommand(list, schema)
	return cmd
}

// RegistrySchema describes the YAML file loaded from ERP_MODULES_FILE.
func RegistrySchema() *jsonschema.Schema {
	ref := &jsonschema.Reflector{ExpandedStruct: true}
	s := ref.Reflect(&core.RegistryFile{})
	s.Title = "ERP module registry"
	return s
}

// ── companies ─────────────────────────────────────────────────────────────────

func (r *runner) companiesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "companies", Short: "Companies"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				res, err := svc.ListCompanies(ctx)
				if err != nil {
					return err
				}
				if r.asJSON {
					return r.printJSON(res.Companies)
				}
				if len(res.Companies) == 0 {
					fmt.Fprintln(r.out, "No companies.")
					return nil
				}
				t := r.newTable("ID", "NAME", "EMAIL", "CURRENCY")
				for _, c := range res.Companies {
					t.AppendRow(table.Row{c.ID, c.Name, c.Email, c.BaseCurrency})
				}
				t.Render()
				return nil
			})
		},
	}
	cmd.AddCommand(list)
	return cmd
}

// ── user ──────────────────────────────────────────────────────────────────────

func (r *runner) userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Console accounts"}

	var req app.CreateUserRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a console account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				u, err := svc.CreateUser(ctx, req)
				if err != nil {
					return err
				}
				if r.asJSON {
					return r.printJSON(u)
				}
				fmt.Fprintf(r.out, "Created user %s (id %d, role %s).\n", u.Username, u.ID, u.Role)
				return nil
			})
		},
	}
	add.Flags().StringVar(&req.Username, "username", "", "login name")
	add.Flags().StringVar(&req.Email, "email", "", "email address")
	add.Flags().StringVar(&req.Password, "password", "", "password (min 8 characters)")
	add.Flags().StringVar(&req.Role, "role", core.RoleMember, "admin or member")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")

	prefs := &cobra.Command{
		Use:   "prefs <user-id>",
		Short: "Show a user's active module and company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return r.withService(cmd, func(ctx context.Context, svc app.ApplicationService) error {
				u, err := svc.GetUser(ctx, id)
				if err != nil {
					return err
				}
				p, err := svc.Preferences(ctx, id)
				if err != nil {
					return err
				}
				company := "- None -"
				if p.Company != nil {
					company = fmt.Sprintf("%s (id %d)", p.Company.Name, p.Company.ID)
				}
				if r.asJSON {
					return r.printJSON(struct {
						User    string        `json:"user"`
						Module  core.Module   `json:"module"`
						Company *core.Company `json:"company"`
					}{u.Username, p.Module, p.Company})
				}
				fmt.Fprintf(r.out, "User:    %s\nModule:  %s (%s)\nCompany: %s\n", u.Username, p.Module.Title, p.Module.Key, company)
				return nil
			})
		},
	}

	cmd.AddCommand(add, prefs)
	return cmd
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
