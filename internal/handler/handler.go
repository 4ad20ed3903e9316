// Package handler is the thin fasthttp surface over the engine: decode, call,
// encode. The engine packages stay pure; routing, auth and persistence live
// outside this module.
package handler

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"proposal-engine/internal/assembler"
	"proposal-engine/internal/editor"
	"proposal-engine/internal/jsonpatch"
	"proposal-engine/internal/model"
	"proposal-engine/internal/reverse"
)

// Metadata wraps every successful response with timing and an id for tracing.
type Metadata struct {
	RequestID   string `json:"request_id"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	DurationMs  int64  `json:"duration_ms"`
	Outcome     string `json:"outcome"`
}

const outcomeSuccess = "SUCCESS"

type assembleResponse struct {
	Metadata Metadata              `json:"metadata"`
	Result   *model.AssembleResult `json:"result"`
}

type editResponse struct {
	Metadata      Metadata          `json:"metadata"`
	Result        *model.EditResult `json:"result"`
	ProposalPatch []jsonpatch.Op    `json:"proposal_patch"`
}

type reverseResponse struct {
	Metadata Metadata             `json:"metadata"`
	Result   *model.ReverseResult `json:"result"`
}

// Route dispatches the three engine endpoints.
func Route(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != fasthttp.MethodPost {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch string(ctx.Path()) {
	case "/assemble":
		handleAssemble(ctx)
	case "/edit":
		handleEdit(ctx)
	case "/reverse":
		handleReverse(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func handleAssemble(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	var req model.AssembleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := assembler.Assemble(&req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	writeJSON(ctx, assembleResponse{
		Metadata: metadata(start),
		Result:   result,
	})
}

func handleEdit(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	var req model.EditRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ProposalData == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "proposalData is required")
		return
	}

	// Operations mutate the proposal in place, so snapshot it up front to
	// diff against afterwards.
	before, err := jsonpatch.Snapshot(req.ProposalData)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "proposalData is not serializable: "+err.Error())
		return
	}

	result, err := editor.Apply(req.ProposalData, req.Customization, req.ProposalRecord, req.Operations)
	if err != nil {
		// The in-memory proposal may be partially mutated; the caller must
		// discard it rather than persist.
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	after, err := jsonpatch.Snapshot(result.ProposalData)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to snapshot proposal: "+err.Error())
		return
	}

	writeJSON(ctx, editResponse{
		Metadata:      metadata(start),
		Result:        result,
		ProposalPatch: jsonpatch.DiffValues(before, after, ""),
	})
}

func handleReverse(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	var req model.ReverseRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(ctx, reverseResponse{
		Metadata: metadata(start),
		Result:   reverse.Calculate(&req),
	})
}

func metadata(start time.Time) Metadata {
	now := time.Now().UTC()
	return Metadata{
		RequestID:   uuid.New().String(),
		StartedAt:   start.UTC().Format(time.RFC3339),
		CompletedAt: now.Format(time.RFC3339),
		DurationMs:  time.Since(start).Milliseconds(),
		Outcome:     outcomeSuccess,
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	ctx.SetContentType("application/json")
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}
