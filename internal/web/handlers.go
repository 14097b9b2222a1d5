package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/justestif/go-story-soundtracker/internal/recommend"
)

// maxRequestBody bounds how much narrative text one request may carry.
const maxRequestBody = 1 << 20

// Recommender is the engine surface the API needs.
type Recommender interface {
	RecommendScene(ctx context.Context, text string) recommend.SceneResult
	RecommendParagraph(ctx context.Context, text string) recommend.ParagraphOutcome
	MatchStory(ctx context.Context, text string) recommend.StoryMatch
	RecommendBook(ctx context.Context, r io.Reader) ([]recommend.ParagraphResult, error)
}

// Handlers holds the API handlers.
type Handlers struct {
	engine Recommender
}

// NewHandlers creates handlers around an engine.
func NewHandlers(engine Recommender) *Handlers {
	return &Handlers{engine: engine}
}

// recommendRequest is the body of POST /api/recommend.
type recommendRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// trackJSON is one recommendation in an API response.
type trackJSON struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	URL         string  `json:"url"`
	MoodScore   float64 `json:"mood_score"`
	MatchReason string  `json:"match_reason"`
}

// recommendResponse is the body of a successful /api/recommend call.
type recommendResponse struct {
	RunID        string      `json:"run_id"`
	Mode         string      `json:"mode"`
	Found        bool        `json:"found"`
	Tracks       []trackJSON `json:"tracks"`
	QueriesTried int         `json:"queries_tried"`
	Stop         string      `json:"stop"`
}

// paragraphJSON is one paragraph entry in a /api/book response.
type paragraphJSON struct {
	Index        int         `json:"index"`
	Text         string      `json:"text"`
	Tracks       []trackJSON `json:"tracks"`
	QueriesTried int         `json:"queries_tried"`
	Stop         string      `json:"stop"`
}

// bookResponse is the body of a successful /api/book call.
type bookResponse struct {
	RunID      string          `json:"run_id"`
	Paragraphs []paragraphJSON `json:"paragraphs"`
}

// errorResponse is the body of any failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Recommend runs one narrative unit through the pipeline. The mode field
// selects story, paragraph, or scene semantics.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	runID := uuid.NewString()
	resp := recommendResponse{RunID: runID, Mode: req.Mode}

	switch req.Mode {
	case "story":
		match := h.engine.MatchStory(r.Context(), req.Text)
		resp.Found = match.Found
		if match.Found {
			resp.Tracks = []trackJSON{toTrackJSON(match.Recommendation)}
		}
		resp.QueriesTried = match.QueriesTried
		resp.Stop = string(match.Stop)
	case "paragraph":
		out := h.engine.RecommendParagraph(r.Context(), req.Text)
		resp.Found = len(out.Recommendations) > 0
		resp.Tracks = toTrackList(out.Recommendations)
		resp.QueriesTried = out.QueriesTried
		resp.Stop = string(out.Stop)
	case "scene":
		res := h.engine.RecommendScene(r.Context(), req.Text)
		resp.Found = len(res.Recommendations) > 0
		resp.Tracks = toTrackList(res.Recommendations)
		resp.QueriesTried = res.QueriesTried
		resp.Stop = string(res.Stop)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
		return
	}

	log.Printf("web: run %s mode=%s tracks=%d queries=%d", runID, req.Mode, len(resp.Tracks), resp.QueriesTried)
	writeJSON(w, http.StatusOK, resp)
}

// Book runs the paragraph pipeline over a whole plain-text document posted
// as the request body.
func (h *Handlers) Book(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	results, err := h.engine.RecommendBook(r.Context(), body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading document: %v", err))
		return
	}

	runID := uuid.NewString()
	resp := bookResponse{RunID: runID, Paragraphs: make([]paragraphJSON, 0, len(results))}
	for _, pr := range results {
		resp.Paragraphs = append(resp.Paragraphs, paragraphJSON{
			Index:        pr.Index,
			Text:         pr.Text,
			Tracks:       toTrackList(pr.Outcome.Recommendations),
			QueriesTried: pr.Outcome.QueriesTried,
			Stop:         string(pr.Outcome.Stop),
		})
	}

	log.Printf("web: run %s mode=book paragraphs=%d", runID, len(resp.Paragraphs))
	writeJSON(w, http.StatusOK, resp)
}

func toTrackJSON(rec recommend.Recommendation) trackJSON {
	return trackJSON{
		Title:       rec.Title,
		Artist:      rec.Artist,
		URL:         rec.URL,
		MoodScore:   rec.MoodScore,
		MatchReason: rec.MatchReason,
	}
}

func toTrackList(recs []recommend.Recommendation) []trackJSON {
	out := make([]trackJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toTrackJSON(rec))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
