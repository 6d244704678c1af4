package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/and161185/kanban/internal/errs"
	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/repository"
)

var _ repository.BoardRepository = (*BoardRepo)(nil)

var ts = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func boardDocD(boardID string) bson.D {
	card := bson.D{
		{Key: "id", Value: "card000001"},
		{Key: "title", Value: "Write docs"},
		{Key: "description", Value: ""},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(ts)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(ts)},
	}
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "boardId", Value: boardID},
		{Key: "name", Value: "Sprint 1"},
		{Key: "columns", Value: bson.D{
			{Key: "toDo", Value: bson.A{card}},
			{Key: "inProgress", Value: bson.A{}},
			{Key: "done", Value: nil},
		}},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(ts)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(ts)},
	}
}

func TestBoardRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ok", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, r.Create(ctx, model.NewBoard("b1", "Sprint 1", ts)))
	})

	mt.Run("duplicate boardId", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))
		require.ErrorIs(mt, r.Create(ctx, model.NewBoard("b1", "Sprint 1", ts)), errs.ErrAlreadyExists)
	})
}

func TestBoardRepo_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("found", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kanban.boards", mtest.FirstBatch, boardDocD("b1")))

		b, err := r.Get(ctx, "b1")
		require.NoError(mt, err)
		require.Equal(mt, "b1", b.BoardID)
		require.Equal(mt, "Sprint 1", b.Name)
		require.Len(mt, b.Columns.ToDo, 1)
		require.Equal(mt, "card000001", b.Columns.ToDo[0].ID)
		require.NotNil(mt, b.Columns.Done, "null arrays are normalized")
		require.True(mt, ts.Equal(b.CreatedAt))
	})

	mt.Run("missing", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kanban.boards", mtest.FirstBatch))

		_, err := r.Get(ctx, "nope")
		require.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("server error", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		_, err := r.Get(ctx, "b1")
		require.Error(mt, err)
		require.NotErrorIs(mt, err, errs.ErrNotFound)
	})
}

func TestBoardRepo_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("matched", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		require.NoError(mt, r.Update(ctx, model.NewBoard("b1", "Renamed", ts)))
	})

	mt.Run("no match", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		require.ErrorIs(mt, r.Update(ctx, model.NewBoard("b1", "Renamed", ts)), errs.ErrNotFound)
	})
}

func TestBoardRepo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("deleted", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, r.Delete(ctx, "b1"))
	})

	mt.Run("already gone", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		require.ErrorIs(mt, r.Delete(ctx, "b1"), errs.ErrNotFound)
	})
}

func TestBoardRepo_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		r := NewBoardRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, r.EnsureIndexes(context.Background()))
	})
}

func TestDocRoundTrip_KeepsInternalIDOut(t *testing.T) {
	b := model.NewBoard("b1", "n", ts)
	b.Columns.Done = nil
	d := toDoc(b)
	require.True(t, d.ID.IsZero(), "new docs let the server assign _id")
	require.NotNil(t, d.Columns.Done)

	raw, err := bson.Marshal(d)
	require.NoError(t, err)
	_, err = bson.Raw(raw).LookupErr("_id")
	require.Error(t, err, "zero _id must be omitted")

	var back boardDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	require.Equal(t, b.BoardID, back.toModel().BoardID)
}
