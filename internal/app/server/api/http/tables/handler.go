// Package tables exposes the four table primitives a client instance needs:
// fetch-all, fetch-by-id, insert, update and delete, scoped to the province
// this server serves. Failures are reported inside the response body so the
// peer can tell "server rejected" apart from "server unreachable".
package tables

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"folharh/internal/storage"
)

type Handler struct {
	store      storage.RowStore
	province   func() string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store storage.RowStore, province func() string, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		province:   province,
		log:        log.With(slog.String("component", "tables_api")),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.insertOp(), h.insert)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	rows, err := h.store.FetchAll(ctx, input.Table, h.province())
	if err != nil {
		h.log.Warn("fetchAll falhou", "table", input.Table, "error", err)
		return &listOutput{Body: rowsResponse{Success: false, Error: err.Error()}}, nil
	}
	if rows == nil {
		rows = []storage.Row{}
	}
	return &listOutput{Body: rowsResponse{Success: true, Rows: rows}}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	row, err := h.store.FetchByID(ctx, input.Table, h.province(), input.ID)
	if err != nil {
		h.log.Warn("fetchById falhou", "table", input.Table, "id", input.ID, "error", err)
		return &findOutput{Body: rowResponse{Success: false, Error: err.Error()}}, nil
	}
	return &findOutput{Body: rowResponse{Success: true, Row: row}}, nil
}

func (h *Handler) insert(ctx context.Context, input *insertInput) (*opOutput, error) {
	if err := h.store.Insert(ctx, input.Table, h.province(), input.Body); err != nil {
		h.log.Warn("insert falhou", "table", input.Table, "error", err)
		return &opOutput{Body: opResponse{Success: false, Error: err.Error()}}, nil
	}
	return &opOutput{Body: opResponse{Success: true}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*opOutput, error) {
	if err := h.store.Update(ctx, input.Table, h.province(), input.ID, input.Body); err != nil {
		h.log.Warn("update falhou", "table", input.Table, "id", input.ID, "error", err)
		return &opOutput{Body: opResponse{Success: false, Error: err.Error()}}, nil
	}
	return &opOutput{Body: opResponse{Success: true}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*opOutput, error) {
	if err := h.store.Delete(ctx, input.Table, h.province(), input.ID); err != nil {
		h.log.Warn("delete falhou", "table", input.Table, "id", input.ID, "error", err)
		return &opOutput{Body: opResponse{Success: false, Error: err.Error()}}, nil
	}
	return &opOutput{Body: opResponse{Success: true}}, nil
}
