package tables

import "folharh/internal/storage"

type listInput struct {
	Table string `path:"table" example:"employees" doc:"Nome da tabela"`
}

type listOutput struct {
	Body rowsResponse
}

type rowsResponse struct {
	Success bool          `json:"success"`
	Rows    []storage.Row `json:"rows"`
	Error   string        `json:"error,omitempty"`
}

type findInput struct {
	Table string `path:"table" example:"employees" doc:"Nome da tabela"`
	ID    string `path:"id" doc:"ID da linha"`
}

type findOutput struct {
	Body rowResponse
}

type rowResponse struct {
	Success bool        `json:"success"`
	Row     storage.Row `json:"row,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type insertInput struct {
	Table string `path:"table" example:"employees" doc:"Nome da tabela"`
	Body  storage.Row
}

type updateInput struct {
	Table string `path:"table" example:"employees" doc:"Nome da tabela"`
	ID    string `path:"id" doc:"ID da linha"`
	Body  storage.Row
}

type deleteInput struct {
	Table string `path:"table" example:"employees" doc:"Nome da tabela"`
	ID    string `path:"id" doc:"ID da linha"`
}

type opOutput struct {
	Body opResponse
}

type opResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
