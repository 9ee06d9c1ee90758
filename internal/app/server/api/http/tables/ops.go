package tables

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-fetch-all",
		Method:      http.MethodGet,
		Path:        "/api/v1/tables/{table}",
		Summary:     "Todas as linhas de uma tabela",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-fetch-by-id",
		Method:      http.MethodGet,
		Path:        "/api/v1/tables/{table}/{id}",
		Summary:     "Uma linha pelo respetivo id",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) insertOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-insert",
		Method:      http.MethodPost,
		Path:        "/api/v1/tables/{table}",
		Summary:     "Inserir uma linha",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/tables/{table}/{id}",
		Summary:     "Atualizar uma linha",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "tables-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tables/{table}/{id}",
		Summary:     "Apagar uma linha",
		Tags:        []string{"tables"},
		Middlewares: h.middleware,
	}
}
