// Package checkout drives one payment attempt from the shipping form to a
// recorded order: initialize, hand off to the hosted widget, verify, finalize.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/pricing"
	"go.uber.org/zap"
)

// OrdersPath is where the shopper lands after a completed checkout.
const OrdersPath = "/orders"

type PaymentAPI interface {
	InitializePayment(ctx context.Context, email string, amount float64, metadata map[string]any) (*models.PaymentInit, error)
	VerifyPayment(ctx context.Context, reference string) (*models.PaymentVerification, error)
}

// Popup is the hosted payment widget embedded in the page. Its callbacks
// fire on the widget's own schedule, not as a return from Open.
type Popup interface {
	Loaded() bool
	Open(req PopupRequest, cb Callbacks) error
}

type PopupRequest struct {
	PublicKey string
	Email     string
	Reference string
	Amount    int64 // minor currency units
	Currency  string
}

type Callbacks struct {
	OnSuccess func(reference string)
	OnClose   func()
}

type Cart interface {
	Items() []models.CartItem
	Total() float64
	Clear(ctx context.Context)
}

type Finalizer interface {
	Finalize(ctx context.Context, reference string, shipping models.ShippingInfo, items []models.CartItem, total float64) (models.Order, error)
}

// Event is published on every state change.
type Event struct {
	State     State
	Reference string
	Order     *models.Order
	Err       error
	Redirect  string
}

type Config struct {
	PublicKey     string
	Currency      string
	VerifyTimeout time.Duration
}

type Deps struct {
	Cart    Cart
	Coupons *pricing.Session
	API     PaymentAPI
	Popup   Popup
	Orders  Finalizer
	Logger  *zap.Logger
}

// attempt is what was priced and submitted; the order records exactly this.
type attempt struct {
	shipping models.ShippingInfo
	items    []models.CartItem
	total    float64
}

type Orchestrator struct {
	cfg  Config
	deps Deps

	mu         sync.Mutex
	state      State
	processing bool
	reference  string
	current    *attempt
	dispatched map[string]bool
	observers  []func(Event)

	wg sync.WaitGroup
}

func New(cfg Config, deps Deps) *Orchestrator {
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = 30 * time.Second
	}
	if deps.Coupons == nil {
		deps.Coupons = &pricing.Session{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, deps: deps, dispatched: make(map[string]bool)}
}

// Subscribe registers fn for every later Event.
func (o *Orchestrator) Subscribe(fn func(Event)) {
	o.mu.Lock()
	o.observers = append(o.observers, fn)
	o.mu.Unlock()
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Processing is true while the submit control should stay disabled.
func (o *Orchestrator) Processing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.processing
}

// Wait blocks until detached verification work has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Submit starts a payment attempt. It returns once the widget is open;
// the outcome arrives through events. Validation and empty-cart errors
// leave the orchestrator untouched.
func (o *Orchestrator) Submit(ctx context.Context, form models.ShippingInfo) error {
	o.mu.Lock()
	if o.processing {
		o.mu.Unlock()
		return ErrInProgress
	}
	if err := ValidateShipping(form); err != nil {
		o.mu.Unlock()
		return err
	}
	items := o.deps.Cart.Items()
	if len(items) == 0 {
		o.mu.Unlock()
		return ErrEmptyCart
	}
	quote := o.deps.Coupons.Quote(o.deps.Cart.Total())
	at := &attempt{shipping: form, items: items, total: quote.Total.InexactFloat64()}
	o.processing = true
	o.current = at
	o.reference = ""
	o.mu.Unlock()

	o.transition(StateInitializing, "", nil, nil)

	if !o.deps.Popup.Loaded() {
		return o.fail("", fmt.Errorf("%w: payment widget is not loaded", ErrGateway))
	}
	if o.cfg.PublicKey == "" {
		return o.fail("", fmt.Errorf("%w: payment public key is missing", ErrGateway))
	}

	metadata := map[string]any{
		"name":  form.Name,
		"phone": form.Phone,
		"items": len(items),
	}
	if coupon, ok := o.deps.Coupons.Applied(); ok {
		metadata["coupon"] = coupon.Code
	}
	started, err := o.deps.API.InitializePayment(ctx, form.Email, at.total, metadata)
	if err != nil {
		return o.fail("", fmt.Errorf("%w: %v", ErrGateway, err))
	}
	if started == nil || started.Reference == "" || started.Amount <= 0 {
		return o.fail("", fmt.Errorf("%w: invalid initialization response", ErrGateway))
	}

	o.mu.Lock()
	o.reference = started.Reference
	o.mu.Unlock()
	o.transition(StateAwaitingGateway, started.Reference, nil, nil)

	req := PopupRequest{
		PublicKey: o.cfg.PublicKey,
		Email:     form.Email,
		Reference: started.Reference,
		Amount:    started.Amount,
		Currency:  o.cfg.Currency,
	}
	cb := Callbacks{
		OnSuccess: func(reference string) { o.onSuccess(reference, at) },
		OnClose:   func() { o.onClose(started.Reference) },
	}
	if err := o.deps.Popup.Open(req, cb); err != nil {
		return o.fail(started.Reference, fmt.Errorf("%w: %v", ErrGateway, err))
	}
	return nil
}

// onSuccess runs on the widget's schedule. Verification is detached and
// dispatched at most once per reference.
func (o *Orchestrator) onSuccess(reference string, at *attempt) {
	if reference == "" {
		o.deps.Logger.Warn("Payment widget reported success without a reference")
		return
	}
	o.mu.Lock()
	if o.dispatched[reference] {
		o.mu.Unlock()
		o.deps.Logger.Info("Ignoring repeated payment callback", zap.String("reference", reference))
		return
	}
	o.dispatched[reference] = true
	o.mu.Unlock()

	o.wg.Add(1)
	go o.verify(reference, at)
}

func (o *Orchestrator) onClose(reference string) {
	o.mu.Lock()
	if o.state != StateAwaitingGateway || o.reference != reference || o.dispatched[reference] {
		o.mu.Unlock()
		return
	}
	o.processing = false
	o.mu.Unlock()

	o.deps.Logger.Info("Payment window closed", zap.String("reference", reference))
	o.transition(StateCancelled, reference, nil, nil)
}

// verify confirms the charge and records the order. A callback from an
// attempt that is no longer current still records its order but leaves the
// state, the processing flag and the cart to the newer attempt.
func (o *Orchestrator) verify(reference string, at *attempt) {
	defer o.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			o.deps.Logger.Error("Payment verification panicked", zap.String("reference", reference), zap.Any("panic", r))
			o.failAttempt(reference, at, fmt.Errorf("%w: %v", ErrVerification, r))
		}
	}()

	if o.isCurrent(at) {
		o.transition(StateVerifying, reference, nil, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.cfg.VerifyTimeout)
	defer cancel()

	res, err := o.deps.API.VerifyPayment(ctx, reference)
	if err != nil {
		o.failAttempt(reference, at, fmt.Errorf("%w: %v", ErrVerification, err))
		return
	}
	if res == nil || !res.Succeeded() {
		status := ""
		if res != nil {
			status = res.Data.Status
		}
		o.failAttempt(reference, at, fmt.Errorf("%w: gateway status %q", ErrVerification, status))
		return
	}

	order, err := o.deps.Orders.Finalize(ctx, reference, at.shipping, at.items, at.total)
	if err != nil {
		o.failAttempt(reference, at, fmt.Errorf("%w: %v", ErrVerification, err))
		return
	}

	o.mu.Lock()
	if o.current != at {
		o.mu.Unlock()
		o.deps.Logger.Warn("Recorded order from an earlier payment window", zap.String("reference", reference))
		return
	}
	o.processing = false
	o.mu.Unlock()

	o.deps.Cart.Clear(ctx)
	o.deps.Logger.Info("Checkout completed", zap.String("reference", reference), zap.Float64("total", at.total))
	o.transition(StateCompleted, reference, &order, nil)
}

func (o *Orchestrator) isCurrent(at *attempt) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current == at
}

// failAttempt fails the orchestrator only when at is still the live attempt.
func (o *Orchestrator) failAttempt(reference string, at *attempt, err error) {
	if !o.isCurrent(at) {
		o.deps.Logger.Warn("Earlier payment window failed verification", zap.String("reference", reference), zap.Error(err))
		return
	}
	o.fail(reference, err)
}

func (o *Orchestrator) fail(reference string, err error) error {
	o.mu.Lock()
	o.processing = false
	o.mu.Unlock()
	o.deps.Logger.Warn("Checkout failed", zap.String("reference", reference), zap.Error(err))
	o.transition(StateFailed, reference, nil, err)
	return err
}

func (o *Orchestrator) transition(state State, reference string, order *models.Order, err error) {
	o.mu.Lock()
	o.state = state
	observers := append(([]func(Event))(nil), o.observers...)
	o.mu.Unlock()

	ev := Event{State: state, Reference: reference, Order: order, Err: err}
	if state == StateCompleted {
		ev.Redirect = OrdersPath
	}
	for _, fn := range observers {
		fn(ev)
	}
}
