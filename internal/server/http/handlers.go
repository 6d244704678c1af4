package httpserver

import (
	"github.com/gofiber/fiber/v2"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/convert"
	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/service"
)

// decode parses a JSON body into v. An empty body leaves v at its zero value so
// required fields are reported by the service rather than as a parse error.
func decode(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return errs.Validation("Invalid request body")
	}
	return nil
}

func (s *Server) respond(c *fiber.Ctx, status int, b *model.Board) error {
	return c.Status(status).JSON(convert.ToAPIBoard(b))
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(api.HealthResponse{Status: "ok"})
}

func (s *Server) createBoard(c *fiber.Ctx) error {
	var req api.CreateBoardRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	b, err := s.svc.CreateBoard(c.UserContext(), req.Name)
	if err != nil {
		return fail("Failed to create board", err)
	}
	return s.respond(c, fiber.StatusCreated, b)
}

func (s *Server) getBoard(c *fiber.Ctx) error {
	b, err := s.svc.GetBoard(c.UserContext(), c.Params("boardId"))
	if err != nil {
		return fail("Failed to fetch board", err)
	}
	return s.respond(c, fiber.StatusOK, b)
}

func (s *Server) renameBoard(c *fiber.Ctx) error {
	var req api.RenameBoardRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	b, err := s.svc.RenameBoard(c.UserContext(), c.Params("boardId"), req.Name)
	if err != nil {
		return fail("Failed to update board", err)
	}
	return s.respond(c, fiber.StatusOK, b)
}

func (s *Server) deleteBoard(c *fiber.Ctx) error {
	if err := s.svc.DeleteBoard(c.UserContext(), c.Params("boardId")); err != nil {
		return fail("Failed to delete board", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) addCard(c *fiber.Ctx) error {
	var req api.AddCardRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	b, err := s.svc.AddCard(c.UserContext(), c.Params("boardId"), model.ColumnKey(req.Column), req.Title, req.Description)
	if err != nil {
		return fail("Failed to add card", err)
	}
	return s.respond(c, fiber.StatusCreated, b)
}

func (s *Server) moveCard(c *fiber.Ctx) error {
	var req api.MoveCardRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	b, err := s.svc.MoveCard(c.UserContext(), c.Params("boardId"), c.Params("cardId"),
		convert.FromAPIPosition(req.From), convert.FromAPIPosition(req.To))
	if err != nil {
		return fail("Failed to move card", err)
	}
	return s.respond(c, fiber.StatusOK, b)
}

func (s *Server) updateCard(c *fiber.Ctx) error {
	var req api.UpdateCardRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	b, err := s.svc.UpdateCard(c.UserContext(), c.Params("boardId"), c.Params("cardId"),
		service.CardPatch{Title: req.Title, Description: req.Description})
	if err != nil {
		return fail("Failed to update card", err)
	}
	return s.respond(c, fiber.StatusOK, b)
}

func (s *Server) deleteCard(c *fiber.Ctx) error {
	b, err := s.svc.DeleteCard(c.UserContext(), c.Params("boardId"), c.Params("cardId"))
	if err != nil {
		return fail("Failed to delete card", err)
	}
	return s.respond(c, fiber.StatusOK, b)
}
