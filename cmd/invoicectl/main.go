package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-invoice-client/app"
	"github.com/jrsteele09/go-invoice-client/forms"
	"github.com/jrsteele09/go-invoice-client/internal/config"
	"github.com/jrsteele09/go-invoice-client/internal/logging"
	"github.com/jrsteele09/go-invoice-client/products"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: invoicectl [flags] <command>

commands:
  login     --email --password
  register  --name --email --password
  logout
  whoami
  products  [--sort name|quantity|price] [--desc]
  add       --product --price --qty
  totals
  invoice
`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	apiURL   string
	dataDir  string
	outDir   string
	banner   bool
	name     string
	email    string
	password string
	product  string
	price    string
	qty      string
	sortBy   string
	desc     bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := options{}
	fs := pflag.NewFlagSet("invoicectl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.apiURL, "api", "", "API base URL (defaults to API_BASE_URL)")
	fs.StringVar(&opts.dataDir, "data", "", "folder holding the session file (defaults to FOLDER)")
	fs.StringVarP(&opts.outDir, "out", "o", "", "folder invoices are saved to (defaults to DOWNLOAD_FOLDER)")
	fs.BoolVar(&opts.banner, "banner", false, "print the application banner")
	fs.StringVar(&opts.name, "name", "", "display name for register")
	fs.StringVar(&opts.email, "email", "", "account email")
	fs.StringVar(&opts.password, "password", "", "account password")
	fs.StringVar(&opts.product, "product", "", "product name for add")
	fs.StringVar(&opts.price, "price", "", "unit price for add")
	fs.StringVar(&opts.qty, "qty", "", "quantity for add")
	fs.StringVar(&opts.sortBy, "sort", string(products.SortByName), "products sort column")
	fs.BoolVar(&opts.desc, "desc", false, "sort descending")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	var cfgOptions []config.Option
	if opts.apiURL != "" {
		cfgOptions = append(cfgOptions, config.WithAPIBaseURL(opts.apiURL))
	}
	if opts.dataDir != "" {
		cfgOptions = append(cfgOptions, config.WithDataFolder(opts.dataDir))
	}
	if opts.outDir != "" {
		cfgOptions = append(cfgOptions, config.WithDownloadFolder(opts.outDir))
	}
	cfg := config.New(cfgOptions...)
	logging.SetupWriter(stderr, cfg.GetEnv(), cfg.GetLogLevel())

	if opts.banner {
		figure.NewFigure(cfg.GetAppName(), "cybermedium", true).Print()
		fmt.Fprintln(stdout)
	}

	a, err := app.New(cfg, ui.NewWriterNotifier(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := dispatch(ctx, a, fs.Arg(0), opts, stdout); err != nil {
		log.Debug().Err(err).Str("command", fs.Arg(0)).Msg("command failed")
		fmt.Fprintf(stderr, "error: %v\n", err)
		if a.Current() == ui.ViewLogin && fs.Arg(0) != "login" && fs.Arg(0) != "register" {
			fmt.Fprintln(stderr, "run `invoicectl login` to sign in")
		}
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, a *app.App, command string, opts options, stdout io.Writer) error {
	switch command {
	case "login":
		return a.Auth.Login(ctx, forms.LoginForm{Email: opts.email, Password: opts.password})
	case "register":
		return a.Auth.Register(ctx, forms.RegisterForm{Name: opts.name, Email: opts.email, Password: opts.password})
	case "logout":
		return a.Logout()
	case "whoami":
		return whoami(a, stdout)
	case "products":
		return listProducts(ctx, a, opts, stdout)
	case "add":
		err := a.Products.Add(ctx, products.Draft{Name: opts.product, Price: opts.price, Quantity: opts.qty})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "added %s\n", opts.product)
		return nil
	case "totals":
		return totals(ctx, a, stdout)
	case "invoice":
		path, err := a.Invoices.Generate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, path)
		return nil
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

func whoami(a *app.App, stdout io.Writer) error {
	if !a.Authenticated() {
		fmt.Fprintln(stdout, "not logged in")
		return nil
	}
	userID := a.Session.UserID()
	if userID == "" {
		userID = "(unknown user)"
	}
	fmt.Fprintf(stdout, "logged in as %s against %s\n", userID, a.Client.BaseURL())
	return nil
}

func listProducts(ctx context.Context, a *app.App, opts options, stdout io.Writer) error {
	field, err := products.ParseSortField(opts.sortBy)
	if err != nil {
		return err
	}
	if err := a.Products.Load(ctx); err != nil {
		return err
	}

	spec := products.SortSpec{Field: field, Direction: products.Ascending}
	if opts.desc {
		spec.Direction = products.Descending
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQTY\tRATE\tTOTAL")
	for _, p := range spec.Sorted(a.Products.Products()) {
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", p.Name, p.Quantity, p.UnitPrice, products.FormatAmount(p.LineTotal))
	}
	return w.Flush()
}

func totals(ctx context.Context, a *app.App, stdout io.Writer) error {
	if err := a.Products.Load(ctx); err != nil {
		return err
	}
	d := a.Products.Totals().Display()
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Sub-Total\t%s\n", d.Subtotal)
	fmt.Fprintf(w, "GST (18%%)\t%s\n", d.Tax)
	fmt.Fprintf(w, "Total\t%s\n", d.Total)
	return w.Flush()
}
