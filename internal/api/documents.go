package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/mdlens/internal/blocks"
	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/fs"
	"github.com/kk-code-lab/mdlens/internal/search"
	"github.com/kk-code-lab/mdlens/internal/store"
)

type documentRequest struct {
	Text *string `json:"text" validate:"required"`
}

type blockResponse struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

type documentResponse struct {
	ID        string          `json:"id"`
	Version   uint64          `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Text      string          `json:"text"`
	Blocks    []blockResponse `json:"blocks"`
}

type plainResponse struct {
	ID      string `json:"id"`
	Version uint64 `json:"version"`
	Text    string `json:"text"`
	Words   int    `json:"words"`
	Chars   int    `json:"chars"`
}

type blockMatches struct {
	Block     int               `json:"block"`
	Kind      string            `json:"kind"`
	Offset    int               `json:"offset"`
	Intervals []search.Interval `json:"intervals"`
}

type searchResponse struct {
	ID          string            `json:"id"`
	Version     uint64            `json:"version"`
	Query       string            `json:"query"`
	Count       int               `json:"count"`
	Occurrences []search.Interval `json:"occurrences"`
	Blocks      []blockMatches    `json:"blocks"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}
	doc, err := s.store.Create(r.Context(), text)
	if err != nil {
		s.storeError(w, err, "create document")
		return
	}
	writeJSON(w, http.StatusCreated, s.documentResponse(doc))
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}
	id := documentID(r)
	doc, err := s.store.Update(r.Context(), id, text)
	if err != nil {
		s.storeError(w, err, "update document")
		return
	}
	s.cache.invalidate(id)
	writeJSON(w, http.StatusOK, s.documentResponse(doc))
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.documentResponse(doc))
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := documentID(r)
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeError(w, err, "delete document")
		return
	}
	s.cache.invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlainText(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	snap := s.cache.snapshot(doc)
	writeJSON(w, http.StatusOK, plainResponse{
		ID:      doc.ID,
		Version: snap.Version,
		Text:    snap.Plain,
		Words:   snap.Words(),
		Chars:   snap.Chars(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if s.cfg.MaxQueryLength > 0 && utf8.RuneCountInString(query) > s.cfg.MaxQueryLength {
		jsonError(w, ErrInvalidParams.Error(), http.StatusBadRequest,
			ErrorField{FieldName: "q", ErrorMessage: validationMessage("max")})
		return
	}

	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	snap := s.cache.snapshot(doc)
	result, err := snap.Search(query)
	if err != nil {
		s.log.Error().Err(err).Str("id", doc.ID).Msg("search document")
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, searchResponseOf(doc.ID, snap, result))
}

// decodeDocument reads and validates a create or update body. It writes the
// error response itself and reports whether the handler may continue.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (string, bool) {
	limit := s.maxDocumentBytes()
	// JSON escaping can grow the body well past the text it carries.
	r.Body = http.MaxBytesReader(w, r.Body, 6*limit+1024)

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return "", false
		}
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return "", false
	}
	if err := s.validate.Struct(req); err != nil {
		jsonError(w, ErrInvalidParams.Error(), http.StatusBadRequest, ExtractErrorFields(err)...)
		return "", false
	}
	if int64(len(*req.Text)) > limit {
		jsonError(w, ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return "", false
	}
	return fs.NormalizeDocument(*req.Text), true
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (store.Document, bool) {
	doc, err := s.store.Get(r.Context(), documentID(r))
	if err != nil {
		s.storeError(w, err, "get document")
		return store.Document{}, false
	}
	return doc, true
}

func (s *Server) storeError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	s.log.Error().Err(err).Msg(op)
	jsonError(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) maxDocumentBytes() int64 {
	if s.cfg.MaxDocumentBytes > 0 {
		return s.cfg.MaxDocumentBytes
	}
	return fs.DefaultMaxDocumentBytes
}

func (s *Server) documentResponse(doc store.Document) documentResponse {
	snap := s.cache.snapshot(doc)
	resp := documentResponse{
		ID:        doc.ID,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
		Text:      doc.Text,
		Blocks:    make([]blockResponse, 0, len(snap.Blocks)),
	}
	for i, b := range snap.Blocks {
		br := blockResponse{
			Index:  i,
			Kind:   b.Kind.String(),
			Offset: b.Offset,
			Length: b.Length,
			Text:   b.PlainText(),
		}
		if el, ok := b.Element(); ok && b.Kind == blocks.KindImage {
			br.URL = el.URL
			br.Alt = el.Alt
		}
		resp.Blocks = append(resp.Blocks, br)
	}
	return resp
}

// searchResponseOf lists only the blocks that received intervals.
func searchResponseOf(id string, snap *document.Snapshot, result *document.Result) searchResponse {
	resp := searchResponse{
		ID:          id,
		Version:     snap.Version,
		Query:       result.Query,
		Count:       result.Len(),
		Occurrences: result.Occurrences,
		Blocks:      []blockMatches{},
	}
	if resp.Occurrences == nil {
		resp.Occurrences = []search.Interval{}
	}
	for _, part := range result.Blocks {
		if len(part.Intervals) == 0 {
			continue
		}
		b := snap.Blocks[part.Block]
		resp.Blocks = append(resp.Blocks, blockMatches{
			Block:     part.Block,
			Kind:      b.Kind.String(),
			Offset:    b.Offset,
			Intervals: part.Intervals,
		})
	}
	return resp
}
