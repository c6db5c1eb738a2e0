package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	cartapp "github.com/trendify/storefront/internal/app/cart"
	chatapp "github.com/trendify/storefront/internal/app/chat"
	"github.com/trendify/storefront/internal/domain"
	"github.com/trendify/storefront/internal/observability"
)

// Fixed bodies of the gateway wire contract.
const (
	msgNoPrompt     = "No prompt provided"
	msgAIFailed     = "AI request failed"
	msgNoAIResponse = "No response from AI"
)

// Server exposes the storefront session API plus the AI gateway endpoint.
// The gateway endpoint is the only place the upstream generator is called;
// the chat service reaches it through a ReplyGateway client.
type Server struct {
	cart      *cartapp.Service
	chat      *chatapp.Service
	catalog   domain.CatalogSource
	generator domain.TextGenerator
	voice     domain.Transcriber
}

func NewServer(
	cart *cartapp.Service,
	chat *chatapp.Service,
	catalog domain.CatalogSource,
	generator domain.TextGenerator,
	voice domain.Transcriber,
) http.Handler {
	s := &Server{
		cart:      cart,
		chat:      chat,
		catalog:   catalog,
		generator: generator,
		voice:     voice,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID)
	r.Use(withCORS)
	r.Use(withLogging)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/ai", s.handleAIGateway)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Post("/cart/items", s.handleAddToCart)
				r.Delete("/cart/items/{productID}", s.handleRemoveFromCart)
				r.Patch("/cart/items/{productID}", s.handleChangeQuantity)
				r.Post("/likes/{productID}", s.handleToggleLike)
				r.Post("/coupon", s.handleApplyCoupon)
				r.Post("/order", s.handlePlaceOrder)
				r.Post("/chat", s.handleChat)
				r.Post("/voice", s.handleVoice)
			})
		})
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type productResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
}

type cartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Lines           []cartLineResponse `json:"lines"`
	DiscountPercent int                `json:"discount_percent"`
	CouponCode      string             `json:"coupon_code"`
	Total           string             `json:"total"`
	DiscountedTotal string             `json:"discounted_total"`
}

type turnResponse struct {
	Role      string           `json:"role"`
	Text      string           `json:"text"`
	CreatedAt domain.Timestamp `json:"created_at"`
}

type sessionResponse struct {
	ID        string           `json:"id"`
	CreatedAt domain.Timestamp `json:"created_at"`
	Cart      cartResponse     `json:"cart"`
	Likes     []int64          `json:"likes"`
	Turns     []turnResponse   `json:"turns"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

type couponRequest struct {
	Code string `json:"code"`
}

type orderResponse struct {
	Total    string           `json:"total"`
	PlacedAt domain.Timestamp `json:"placed_at"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	UserTurn      turnResponse `json:"user_turn"`
	AssistantTurn turnResponse `json:"assistant_turn"`
}

type likeResponse struct {
	ProductID int64 `json:"product_id"`
	Liked     bool  `json:"liked"`
}

type voiceResponse struct {
	Text string `json:"text"`
}

type aiRequest struct {
	Prompt string `json:"prompt"`
}

type aiResponse struct {
	Reply string `json:"reply"`
}

// ─────────────────────────────────────────────
// Gateway endpoint
// ─────────────────────────────────────────────

func (s *Server) handleAIGateway(w http.ResponseWriter, r *http.Request) {
	var req aiRequest
	// A missing or malformed body counts as a missing prompt; no upstream
	// call is made in either case.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, msgNoPrompt)
		return
	}

	reply, err := s.generator.GenerateReply(r.Context(), req.Prompt)
	if err != nil {
		// Upstream detail stays on the server side of the boundary.
		observability.LoggerFromContext(r.Context()).Error("upstream ai call failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgAIFailed)
		return
	}

	if reply == "" {
		reply = msgNoAIResponse
	}

	writeJSON(w, http.StatusOK, aiResponse{Reply: reply})
}

// ─────────────────────────────────────────────
// Catalog and sessions
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		out = append(out, productResponse{
			ID:    int64(p.ID),
			Title: p.Title,
			Price: p.Price.StringFixed(2),
			Image: p.Image,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, turns, err := s.chat.StartSession(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.toSessionResponse(r, session, turns))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))

	session, err := s.cart.Session(r.Context(), sessionID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	turns, err := s.chat.Timeline(r.Context(), sessionID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.toSessionResponse(r, session, turns))
}

// ─────────────────────────────────────────────
// Cart operations
// ─────────────────────────────────────────────

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cart, err := s.cart.AddToCart(r.Context(), sessionID, domain.ProductID(req.ProductID))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeCart(w, r, http.StatusOK, cart)
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	cart, err := s.cart.RemoveFromCart(r.Context(), sessionID, productID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeCart(w, r, http.StatusOK, cart)
}

func (s *Server) handleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cart, err := s.cart.ChangeQuantity(r.Context(), sessionID, productID, req.Delta)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeCart(w, r, http.StatusOK, cart)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	liked, err := s.cart.ToggleLike(r.Context(), sessionID, productID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{ProductID: int64(productID), Liked: liked})
}

func (s *Server) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))

	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cart, err := s.cart.ApplyCoupon(r.Context(), sessionID, req.Code)
	if err != nil && !errors.Is(err, domain.ErrInvalidCoupon) {
		s.writeDomainError(w, r, err)
		return
	}
	if errors.Is(err, domain.ErrInvalidCoupon) {
		// The discount reset has already taken effect; the caller still
		// needs to see the rejection.
		writeError(w, http.StatusUnprocessableEntity, domain.ErrInvalidCoupon.Error())
		return
	}
	s.writeCart(w, r, http.StatusOK, cart)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))

	receipt, err := s.cart.PlaceOrder(r.Context(), sessionID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{
		Total:    receipt.Total.StringFixed(2),
		PlacedAt: receipt.PlacedAt,
	})
}

// ─────────────────────────────────────────────
// Chat and voice
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(chi.URLParam(r, "sessionID"))

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := s.chat.Send(r.Context(), sessionID, req.Text)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		UserTurn:      toTurnResponse(out.UserTurn),
		AssistantTurn: toTurnResponse(out.AssistantTurn),
	})
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	text, err := s.voice.Transcribe(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voiceResponse{Text: text})
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, status int, cart domain.Cart) {
	writeJSON(w, status, s.toCartResponse(r, cart))
}

func (s *Server) toCartResponse(r *http.Request, cart domain.Cart) cartResponse {
	ctx := r.Context()

	lookup := func(id domain.ProductID) (domain.Product, bool) {
		prod, err := s.catalog.Get(ctx, id)
		if err != nil {
			return domain.Product{}, false
		}
		return prod, true
	}

	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		line := cartLineResponse{
			ProductID: int64(l.ProductID),
			Quantity:  l.Quantity,
		}
		if prod, ok := lookup(l.ProductID); ok {
			line.Title = prod.Title
		}
		lines = append(lines, line)
	}

	price := func(id domain.ProductID) (decimal.Decimal, bool) {
		prod, ok := lookup(id)
		if !ok {
			return decimal.Zero, false
		}
		return prod.Price, true
	}

	return cartResponse{
		Lines:           lines,
		DiscountPercent: cart.DiscountPercent,
		CouponCode:      cart.CouponCode,
		Total:           cart.Total(price).StringFixed(2),
		DiscountedTotal: cart.DiscountedTotal(price).StringFixed(2),
	}
}

func toTurnResponse(t *domain.ConversationTurn) turnResponse {
	return turnResponse{
		Role:      string(t.Role),
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
	}
}

func (s *Server) toSessionResponse(r *http.Request, session *domain.Session, turns []*domain.ConversationTurn) sessionResponse {
	likes := make([]int64, 0, len(session.Likes))
	for id, liked := range session.Likes {
		if liked {
			likes = append(likes, int64(id))
		}
	}

	turnOut := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		turnOut = append(turnOut, toTurnResponse(t))
	}

	return sessionResponse{
		ID:        string(session.ID),
		CreatedAt: session.CreatedAt,
		Cart:      s.toCartResponse(r, session.Cart),
		Likes:     likes,
		Turns:     turnOut,
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrVoiceUnavailable):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseProductID(w http.ResponseWriter, r *http.Request) (domain.ProductID, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return domain.ProductID(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
