package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartapp "github.com/cafe-amigas/storefront/internal/cart/application"
	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
	catalogapp "github.com/cafe-amigas/storefront/internal/catalog/application"
	checkoutapp "github.com/cafe-amigas/storefront/internal/checkout/application"
	checkoutdomain "github.com/cafe-amigas/storefront/internal/checkout/domain"
)

// Handler maps each storefront action onto a named operation of the cart
// store, customization session or checkout orchestrator. It only decodes,
// dispatches and encodes; every rule lives in the services it drives.
type Handler struct {
	log      *slog.Logger
	cart     *cartapp.Service
	session  *cartapp.Session
	checkout *checkoutapp.Service
	catalog  *catalogapp.Service
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, cart *cartapp.Service, session *cartapp.Session, checkout *checkoutapp.Service, catalog *catalogapp.Service) *Handler {
	return &Handler{
		log:      log,
		cart:     cart,
		session:  session,
		checkout: checkout,
		catalog:  catalog,
		tracer:   otel.Tracer("cart-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addFromCatalog)
	r.Put("/cart/items/{index}", h.editItem)
	r.Delete("/cart/items/{index}", h.removeItem)
	r.Delete("/cart/items", h.removeMany)

	r.Post("/customize/preview", h.previewDraft)
	r.Post("/customize/begin", h.beginEdit)
	r.Post("/customize/submit", h.submitDraft)
	r.Post("/customize/cancel", h.cancelEdit)

	r.Post("/checkout", h.placeOrder)

	return r
}

// draftReq is the customize form payload. Price is always computed server
// side from the resolved base; a client can never name its own price.
type draftReq struct {
	BaseID     string   `json:"baseId"`
	CustomName string   `json:"customName"`
	Flavor     string   `json:"flavor"`
	Size       string   `json:"size"`
	Extras     []string `json:"extras"`
}

func (h *Handler) buildDraft(req draftReq) cartdomain.LineItem {
	base := h.catalog.BaseFor(req.BaseID)
	size := cartdomain.Size(req.Size)
	return cartdomain.LineItem{
		ID:     cartdomain.NewItemID(),
		BaseID: base.ID,
		Name:   cartdomain.DisplayName(req.CustomName, size, req.Flavor, base),
		Flavor: req.Flavor,
		Size:   size,
		Extras: req.Extras,
		Price:  cartdomain.ComputePrice(base, size, req.Extras),
		Custom: true,
	}
}

type cartView struct {
	Items []cartdomain.LineItem `json:"items"`
	Count int                   `json:"count"`
	Total int64                 `json:"total"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	writeJSON(w, http.StatusOK, cartView{
		Items: h.cart.Items(),
		Count: h.cart.Len(),
		Total: h.cart.Total(),
	})
}

func (h *Handler) addFromCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddFromCatalog")
	defer span.End()

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	menuItem, ok := h.catalog.Resolve(req.ID)
	if !ok {
		http.Error(w, "unknown menu item", http.StatusNotFound)
		return
	}

	item := cartdomain.LineItem{
		ID:     cartdomain.NewItemID(),
		BaseID: menuItem.ID,
		Name:   menuItem.Name,
		Price:  menuItem.Price,
	}
	if err := h.cart.Add(ctx, item); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) editItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "EditItem")
	defer span.End()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	item := h.buildDraft(req)
	if err := h.cart.Edit(ctx, index, item); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveItem")
	defer span.End()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	if err := h.cart.Remove(ctx, index); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMany(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveMany")
	defer span.End()

	var req struct {
		Indices []int `json:"indices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.cart.RemoveMany(ctx, req.Indices); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) previewDraft(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "PreviewDraft")
	defer span.End()

	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	item := h.buildDraft(req)
	writeJSON(w, http.StatusOK, map[string]any{"name": item.Name, "price": item.Price})
}

func (h *Handler) beginEdit(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "BeginEdit")
	defer span.End()

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	draft, err := h.session.Begin(req.Index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *Handler) submitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SubmitDraft")
	defer span.End()

	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	item := h.buildDraft(req)
	if err := h.session.Submit(ctx, item); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "CancelEdit")
	defer span.End()

	h.session.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req struct {
		Customer checkoutdomain.Customer `json:"customer"`
		Selected []int                   `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	order, err := h.checkout.Checkout(ctx, req.Customer, req.Selected)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cartapp.ErrIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cartapp.ErrDuplicateID):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, checkoutdomain.ErrMissingFields),
		errors.Is(err, checkoutdomain.ErrEmptySelection),
		errors.Is(err, cartdomain.ErrNegativePrice),
		errors.Is(err, cartdomain.ErrEmptyID):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
