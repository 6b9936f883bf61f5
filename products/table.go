package products

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
	"github.com/jrsteele09/go-invoice-client/sessions"
	"github.com/jrsteele09/go-invoice-client/status"
	"github.com/jrsteele09/go-invoice-client/ui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// API is the part of the API client the table needs
type API interface {
	ListProducts(ctx context.Context) ([]apiclient.RemoteProduct, apiclient.Result)
	CreateProduct(ctx context.Context, p apiclient.NewProduct) apiclient.Result
}

// Deps holds the collaborators of a Table
type Deps struct {
	API       API
	Session   sessions.Store
	Tracker   *status.Tracker
	Navigator ui.Navigator
	Notifier  ui.Notifier
}

// Table is the in-memory product list behind the product view. The slice is
// replaced wholesale on every mutation; two overlapping Load/Add calls are not
// serialised against each other and the last one to finish wins.
type Table struct {
	deps    Deps
	nowTime func() time.Time

	mu       sync.RWMutex
	products []Product
	sortSpec SortSpec
	draft    Draft
}

// TableOption defines a function type to modify the Table instance.
type TableOption func(*Table)

// WithNowTime sets the clock used for temporary product IDs (primarily for testing)
func WithNowTime(nowFunc func() time.Time) TableOption {
	return func(t *Table) {
		t.nowTime = nowFunc
	}
}

func NewTable(deps Deps, options ...TableOption) (*Table, error) {
	if deps.API == nil {
		return nil, errors.New("[NewTable] API is required")
	}
	if deps.Session == nil {
		return nil, errors.New("[NewTable] Session is required")
	}
	if deps.Tracker == nil {
		return nil, errors.New("[NewTable] Tracker is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewTable] Navigator is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[NewTable] Notifier is required")
	}

	t := &Table{
		deps:     deps,
		nowTime:  time.Now,
		sortSpec: DefaultSort,
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// Load fetches the product collection. Without a token it navigates to the
// login view and sends nothing. A failed fetch is logged and leaves the list as it was.
func (t *Table) Load(ctx context.Context) error {
	if _, ok := t.deps.Session.GetToken(); !ok {
		t.deps.Navigator.Navigate(ui.ViewLogin)
		return apperrors.ErrNoToken
	}

	done := t.deps.Tracker.Begin(status.OpLoadProducts)
	defer done()

	remote, res := t.deps.API.ListProducts(ctx)
	switch res.Outcome {
	case apiclient.OutcomeUnauthorized:
		t.deps.Navigator.Navigate(ui.ViewLogin)
		return res.Err
	case apiclient.OutcomeError:
		log.Err(res.Err).Msg("error fetching products")
		return res.Err
	}

	loaded := make([]Product, 0, len(remote))
	for _, rp := range remote {
		loaded = append(loaded, FromRemote(rp))
	}

	t.mu.Lock()
	t.products = loaded
	t.mu.Unlock()

	log.Debug().Int("count", len(loaded)).Msg("products loaded")
	return nil
}

// Add submits the draft. An incomplete draft is a no-op: no request, list
// unchanged. On success a row with a temporary, time-derived ID is appended
// and the draft is cleared; the server-assigned ID only appears after the next Load.
func (t *Table) Add(ctx context.Context, draft Draft) error {
	t.mu.Lock()
	t.draft = draft
	t.mu.Unlock()

	if !draft.Complete() {
		return apperrors.ErrIncompleteDraft
	}

	np, err := draft.Parse()
	if err != nil {
		return err
	}

	done := t.deps.Tracker.Begin(status.OpAddProduct)
	defer done()

	res := t.deps.API.CreateProduct(ctx, np)
	switch res.Outcome {
	case apiclient.OutcomeUnauthorized:
		t.deps.Navigator.Navigate(ui.ViewLogin)
		return res.Err
	case apiclient.OutcomeError:
		log.Err(res.Err).Str("product", np.ProductName).Msg("error adding product")
		t.deps.Notifier.Notify(ui.Notification{
			Title:       "Error adding new Product",
			Description: "Please try again later",
		})
		return res.Err
	}

	added := NewProduct(strconv.FormatInt(t.nowTime().UnixMilli(), 10), np.ProductName, np.Price, np.Quantity)

	t.mu.Lock()
	next := make([]Product, len(t.products), len(t.products)+1)
	copy(next, t.products)
	t.products = append(next, added)
	t.draft = Draft{}
	t.mu.Unlock()

	return nil
}

// Sort reorders the list by field, toggling direction on a repeated field
func (t *Table) Sort(field SortField) SortSpec {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sortSpec = t.sortSpec.Next(field)
	t.products = t.sortSpec.Sorted(t.products)
	return t.sortSpec
}

// Products returns a copy of the current rows
func (t *Table) Products() []Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Product(nil), t.products...)
}

func (t *Table) SortSpec() SortSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortSpec
}

// Draft returns the pending add-product input; it is empty after a successful Add
func (t *Table) Draft() Draft {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.draft
}

// Totals computes subtotal, GST and total over the current rows
func (t *Table) Totals() Totals {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return ComputeTotals(t.products)
}
