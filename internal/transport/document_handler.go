package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jsonlens/internal/ast"
	"jsonlens/internal/catalog"
	"jsonlens/internal/lexer"
	"jsonlens/internal/middleware"
	"jsonlens/internal/parser"
	"jsonlens/internal/repository"
	"jsonlens/internal/service"
	"jsonlens/internal/token"
)

// TokenDTO is one token in a tokens response
type TokenDTO struct {
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// TokensResponse is the response of the tokens endpoint
type TokensResponse struct {
	Count  int        `json:"count"`
	Tokens []TokenDTO `json:"tokens"`
}

// InspectRequest is the inspect request payload. Artifacts selects which
// renderings to include; an empty list means all of them.
type InspectRequest struct {
	Document  json.RawMessage `json:"document" validate:"required"`
	Artifacts []string        `json:"artifacts" validate:"dive,oneof=tokens tree ast"`
}

// InspectResponse is the inspect response
type InspectResponse struct {
	Tokens []TokenDTO      `json:"tokens,omitempty"`
	Tree   string          `json:"tree,omitempty"`
	AST    string          `json:"ast,omitempty"`
	Report *catalog.Report `json:"report"`
}

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	documentService service.DocumentService
	documentRepo    repository.DocumentRepository
	logger          *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService service.DocumentService, documentRepo repository.DocumentRepository, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		documentRepo:    documentRepo,
		logger:          logger,
	}
}

// RegisterRoutes registers all document routes
func (h *DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Post("/check", h.Check)
		r.Post("/tokens", h.Tokens)
		r.Post("/tree", h.Tree)
		r.Post("/ast", h.AST)
		r.Post("/inspect", h.Inspect)
		r.Get("/sample", h.Sample)
	})
}

// readDocumentBody reads the raw request body. It writes the error response
// itself when reading fails, returning ok=false.
func (h *DocumentHandler) readDocumentBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, "document exceeds size limit")
			return nil, false
		}
		h.logger.Error("Failed to read request body", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "request body is empty")
		return nil, false
	}
	return body, true
}

// respondSyntaxError maps lexical and syntax errors to a 400 with the source
// position in the details.
func (h *DocumentHandler) respondSyntaxError(w http.ResponseWriter, err error) {
	details := map[string]interface{}{}

	var lexErr *lexer.Error
	var parseErr *parser.Error
	switch {
	case errors.As(err, &lexErr):
		details["position"] = lexErr.Pos.String()
		details["reason"] = lexErr.Msg
	case errors.As(err, &parseErr):
		details["position"] = parseErr.Pos.String()
		details["token_index"] = parseErr.Index
		details["reason"] = parseErr.Msg
	default:
		details["reason"] = err.Error()
	}

	middleware.RespondWithErrorDetails(w, http.StatusBadRequest, "document is not well formed", details)
}

// Check runs the schema check over the posted document
func (h *DocumentHandler) Check(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readDocumentBody(w, r)
	if !ok {
		return
	}

	report, err := h.documentService.Check(r.Context(), body)
	if err != nil {
		h.respondSyntaxError(w, err)
		return
	}

	status := http.StatusOK
	if !report.Valid {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Info("Document checked",
		zap.String("report_id", report.ID.String()),
		zap.Bool("valid", report.Valid),
		zap.Int("findings", len(report.Findings)),
	)
	middleware.RespondWithJSON(w, status, report)
}

// Tokens returns the token list of the posted document
func (h *DocumentHandler) Tokens(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readDocumentBody(w, r)
	if !ok {
		return
	}

	toks, err := h.documentService.Tokenize(r.Context(), body)
	if err != nil {
		h.respondSyntaxError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, TokensResponse{
		Count:  len(toks),
		Tokens: tokenDTOs(toks),
	})
}

// Tree returns the parse-tree dump of the posted document as plain text
func (h *DocumentHandler) Tree(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readDocumentBody(w, r)
	if !ok {
		return
	}

	result, err := h.documentService.Parse(r.Context(), body)
	if err != nil {
		h.respondSyntaxError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	result.Tree.WritePreOrder(w)
}

// AST returns the AST dump of the posted document as plain text
func (h *DocumentHandler) AST(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readDocumentBody(w, r)
	if !ok {
		return
	}

	result, err := h.documentService.Parse(r.Context(), body)
	if err != nil {
		h.respondSyntaxError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	ast.WritePreOrder(w, result.AST)
}

// Inspect runs the full pipeline and returns the selected renderings
func (h *DocumentHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, "document exceeds size limit")
			return
		}
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insp, err := h.documentService.Inspect(r.Context(), req.Document)
	if err != nil {
		h.respondSyntaxError(w, err)
		return
	}

	wanted := map[string]bool{}
	for _, a := range req.Artifacts {
		wanted[a] = true
	}
	all := len(wanted) == 0

	resp := InspectResponse{Report: insp.Report}
	if all || wanted["tokens"] {
		resp.Tokens = tokenDTOs(insp.Tokens)
	}
	if all || wanted["tree"] {
		resp.Tree = insp.Tree.String()
	}
	if all || wanted["ast"] {
		resp.AST = ast.Dump(insp.AST)
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Sample returns the canonical embedded document
func (h *DocumentHandler) Sample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.documentRepo.Sample())
}

func tokenDTOs(toks []token.Token) []TokenDTO {
	out := make([]TokenDTO, len(toks))
	for i, tok := range toks {
		out[i] = TokenDTO{
			Type:   tok.Type.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		}
	}
	return out
}
