// Package api holds the wire messages shared by the REST and gRPC facades and their clients.
package api

// Card is the wire form of a card. Timestamps are ISO-8601 UTC strings.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Columns always carries all three keys, each an array.
type Columns struct {
	ToDo       []Card `json:"toDo"`
	InProgress []Card `json:"inProgress"`
	Done       []Card `json:"done"`
}

// Board is the wire form of a board.
type Board struct {
	BoardID   string  `json:"boardId"`
	Name      string  `json:"name"`
	Columns   Columns `json:"columns"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Position addresses a slot: column key plus zero-based index.
type Position struct {
	Column string `json:"column"`
	Index  int    `json:"index"`
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

type GetBoardRequest struct {
	BoardID string `json:"boardId"`
}

type RenameBoardRequest struct {
	BoardID string `json:"boardId,omitempty"`
	Name    string `json:"name"`
}

type DeleteBoardRequest struct {
	BoardID string `json:"boardId"`
}

type DeleteBoardResponse struct{}

type AddCardRequest struct {
	BoardID     string `json:"boardId,omitempty"`
	Column      string `json:"column"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type MoveCardRequest struct {
	BoardID string   `json:"boardId,omitempty"`
	CardID  string   `json:"cardId,omitempty"`
	From    Position `json:"from"`
	To      Position `json:"to"`
}

// UpdateCardRequest edits a card. A nil Description leaves it unchanged.
type UpdateCardRequest struct {
	BoardID     string  `json:"boardId,omitempty"`
	CardID      string  `json:"cardId,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type DeleteCardRequest struct {
	BoardID string `json:"boardId"`
	CardID  string `json:"cardId"`
}

// ErrorResponse is the REST error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
